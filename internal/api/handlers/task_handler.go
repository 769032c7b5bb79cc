package handlers

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/avelar/taskhub-be/internal/api/respond"
	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/auth"
	"github.com/avelar/taskhub-be/internal/models"
	"github.com/avelar/taskhub-be/internal/services"
	"github.com/avelar/taskhub-be/internal/storage"
	"github.com/avelar/taskhub-be/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles HTTP requests for tasks. Every route behind it runs
// after the access guard, so the owner identity is always on the context.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles the request to create a new task for the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	payload, ok := decodePayload(r)
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	norm, violations := validation.TaskCreate.Apply(payload)
	if violations != nil {
		respond.Err(w, apperr.Validation(violations))
		return
	}

	input := services.TaskInput{}
	input.Title, _ = strField(norm, "title")
	input.Description, _ = strField(norm, "description")
	input.Priority, _ = strField(norm, "priority")
	input.DueDate, _ = timeField(norm, "dueDate")

	task, err := h.service.Create(r.Context(), user.ID, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create task")
		respond.Err(w, err)
		return
	}

	respond.SuccessMsg(w, http.StatusCreated, "Task created successfully", map[string]any{"task": task})
}

// List handles the request to list the caller's tasks with optional filters,
// sorting and pagination.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())
	q := r.URL.Query()

	params := services.ListParams{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.Limit, _ = strconv.Atoi(q.Get("limit"))

	switch q.Get("completed") {
	case "true":
		completed := true
		params.Completed = &completed
	case "false":
		completed := false
		params.Completed = &completed
	}

	if p := q.Get("priority"); slices.Contains(models.Priorities, p) {
		params.Priority = p
	}

	tasks, pagination, err := h.service.List(r.Context(), user.ID, params)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list tasks")
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, map[string]any{
		"tasks":      tasks,
		"pagination": pagination,
	})
}

// Get handles the request to fetch one of the caller's tasks by id.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	task, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Success(w, http.StatusOK, map[string]any{"task": task})
}

// Update handles a partial update of one of the caller's tasks.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	payload, ok := decodePayload(r)
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	norm, violations := validation.TaskUpdate.Apply(payload)
	if violations != nil {
		respond.Err(w, apperr.Validation(violations))
		return
	}

	patch := storage.TaskPatch{}
	if title, ok := strField(norm, "title"); ok {
		patch.Title = &title
	}
	if description, ok := strField(norm, "description"); ok {
		patch.Description = &description
	}
	if priority, ok := strField(norm, "priority"); ok {
		patch.Priority = &priority
	}
	if completed, ok := boolField(norm, "completed"); ok {
		patch.Completed = &completed
	}
	patch.DueDate, _ = timeField(norm, "dueDate")

	task, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), patch)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.SuccessMsg(w, http.StatusOK, "Task updated successfully", map[string]any{"task": task})
}

// Delete handles the removal of one of the caller's tasks.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	task, err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.SuccessMsg(w, http.StatusOK, "Task deleted successfully", map[string]any{"task": task})
}

// Toggle flips the completion flag of one of the caller's tasks.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFrom(r.Context())

	task, err := h.service.Toggle(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	message := "Task marked as pending"
	if task.Completed {
		message = "Task completed"
	}
	respond.SuccessMsg(w, http.StatusOK, message, map[string]any{"task": task})
}
