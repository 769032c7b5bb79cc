package services

import (
	"context"
	"errors"
	"time"

	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/models"
	"github.com/avelar/taskhub-be/internal/storage"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TaskInput carries the validated fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// ListParams narrows, orders and paginates a task listing.
type ListParams struct {
	Page      int
	Limit     int
	Completed *bool
	Priority  string
	SortBy    string
	SortOrder string
}

// TaskServiceProvider defines the interface for task operations. The owner id
// always comes from the authenticated identity, never from client input.
type TaskServiceProvider interface {
	Create(ctx context.Context, ownerID string, in TaskInput) (models.Task, error)
	List(ctx context.Context, ownerID string, p ListParams) ([]models.Task, models.Pagination, error)
	Get(ctx context.Context, ownerID, id string) (models.Task, error)
	Update(ctx context.Context, ownerID, id string, patch storage.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, ownerID, id string) (models.Task, error)
	Toggle(ctx context.Context, ownerID, id string) (models.Task, error)
}

// TaskService provides business logic for tasks. Ownership scoping happens in
// the store: every lookup and mutation keys on (id, owner), so a task owned
// by someone else reports not-found.
type TaskService struct {
	store storage.TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(store storage.TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create persists a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskInput) (models.Task, error) {
	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return models.Task{}, apperr.Internal("Error creating task", err)
	}
	return task, nil
}

// List returns one page of the caller's tasks plus pagination metadata.
func (s *TaskService) List(ctx context.Context, ownerID string, p ListParams) ([]models.Task, models.Pagination, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := storage.TaskFilter{
		Completed: p.Completed,
		Priority:  p.Priority,
		SortBy:    p.SortBy,
		SortDesc:  p.SortOrder != "asc",
		Offset:    (page - 1) * limit,
		Limit:     limit,
	}

	tasks, total, err := s.store.ListTasks(ctx, ownerID, filter)
	if err != nil {
		return nil, models.Pagination{}, apperr.Internal("Error fetching tasks", err)
	}

	pagination := models.Pagination{
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalTasks:  total,
		HasNextPage: page*limit < total,
		HasPrevPage: page > 1,
	}
	return tasks, pagination, nil
}

// Get retrieves one of the caller's tasks by id.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (models.Task, error) {
	task, err := s.store.TaskByID(ctx, ownerID, id)
	if err != nil {
		return models.Task{}, taskErr(err, "Error fetching task")
	}
	return task, nil
}

// Update applies a partial update to one of the caller's tasks. Fields absent
// from the patch are left untouched; the owner is never settable.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch storage.TaskPatch) (models.Task, error) {
	task, err := s.store.UpdateTask(ctx, ownerID, id, patch, time.Now().UTC())
	if err != nil {
		return models.Task{}, taskErr(err, "Error updating task")
	}
	return task, nil
}

// Delete removes one of the caller's tasks and returns it. The find-and-delete
// is a single scoped statement in the store.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) (models.Task, error) {
	task, err := s.store.DeleteTask(ctx, ownerID, id)
	if err != nil {
		return models.Task{}, taskErr(err, "Error deleting task")
	}
	return task, nil
}

// Toggle flips the completion flag of one of the caller's tasks.
func (s *TaskService) Toggle(ctx context.Context, ownerID, id string) (models.Task, error) {
	task, err := s.store.ToggleTask(ctx, ownerID, id, time.Now().UTC())
	if err != nil {
		return models.Task{}, taskErr(err, "Error toggling task status")
	}
	return task, nil
}

func taskErr(err error, internalMsg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("Task not found")
	}
	return apperr.Internal(internalMsg, err)
}
