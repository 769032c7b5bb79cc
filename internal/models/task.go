package models

import (
	"encoding/json"
	"time"
)

// Task priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Priorities lists the accepted priority values.
var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Task status values derived from the stored fields.
const (
	StatusCompleted = "completed"
	StatusOverdue   = "overdue"
	StatusPending   = "pending"
)

// Task represents a single to-do item owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Status derives the presentation state of a task. It is computed from the
// stored fields at serialization time and never persisted.
func (t Task) Status() string {
	if t.Completed {
		return StatusCompleted
	}
	if t.DueDate != nil && time.Now().After(*t.DueDate) {
		return StatusOverdue
	}
	return StatusPending
}

// MarshalJSON includes the derived status field in the serialized task.
func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		Status string `json:"status"`
	}{alias(t), t.Status()})
}

// Pagination describes the window returned by a task listing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalTasks  int  `json:"totalTasks"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}
