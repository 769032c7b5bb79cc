package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTaskStatus(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		task Task
		want string
	}{
		{"completed", Task{Completed: true}, StatusCompleted},
		{"completed wins over overdue", Task{Completed: true, DueDate: &past}, StatusCompleted},
		{"overdue", Task{DueDate: &past}, StatusOverdue},
		{"pending with future due date", Task{DueDate: &future}, StatusPending},
		{"pending without due date", Task{}, StatusPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.task.Status(); got != tc.want {
				t.Errorf("Status() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTaskMarshalIncludesStatus(t *testing.T) {
	task := Task{ID: "t1", Title: "Buy milk", Priority: PriorityMedium}

	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["status"] != StatusPending {
		t.Errorf("status = %v, want %q", decoded["status"], StatusPending)
	}
	if decoded["title"] != "Buy milk" {
		t.Errorf("title = %v", decoded["title"])
	}
}
