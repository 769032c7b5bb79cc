// Package storage defines the persistence interfaces and their SQLite
// implementation. Every task query and mutation keys on (id, user_id), so
// ownership scoping is enforced at the store boundary rather than by
// post-fetch checks in application code.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/avelar/taskhub-be/internal/models"
)

var (
	// ErrNotFound is returned when no record matches the scoped key. A task
	// owned by a different user is indistinguishable from a missing one.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user insert violates email
	// uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
}

// TaskFilter narrows and orders a task listing. SortBy is one of the
// ListSortFields keys; anything else falls back to createdAt.
type TaskFilter struct {
	Completed *bool
	Priority  string
	SortBy    string
	SortDesc  bool
	Offset    int
	Limit     int
}

// ListSortFields maps the accepted sort keys to their columns.
var ListSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"title":     "title",
}

// TaskPatch carries the fields of a partial update. Nil fields are left
// untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Completed   *bool
	DueDate     *time.Time
}

// TaskStore persists tasks. Every operation besides CreateTask takes the
// owner id as part of the key.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.Task) error
	TaskByID(ctx context.Context, ownerID, id string) (models.Task, error)
	ListTasks(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, int, error)
	UpdateTask(ctx context.Context, ownerID, id string, patch TaskPatch, now time.Time) (models.Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) (models.Task, error)
	ToggleTask(ctx context.Context, ownerID, id string, now time.Time) (models.Task, error)
}
