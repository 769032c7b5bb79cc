package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/avelar/taskhub-be/internal/models"
)

const taskCols = "id, user_id, title, description, priority, completed, due_date, created_at, updated_at"

// SQLite implements UserStore and TaskStore over database/sql.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, email, name, password_hash, created_at) VALUES(?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
		return ErrDuplicateEmail
	}
	return err
}

func (s *SQLite) UserByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (s *SQLite) UserByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *SQLite) CreateTask(ctx context.Context, task models.Task) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tasks("+taskCols+") VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.UserID, task.Title, task.Description, task.Priority,
		task.Completed, nullTime(task.DueDate), task.CreatedAt, task.UpdatedAt)
	return err
}

func (s *SQLite) TaskByID(ctx context.Context, ownerID, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskCols+" FROM tasks WHERE id = ? AND user_id = ?", id, ownerID)
	return scanTask(row)
}

func (s *SQLite) ListTasks(ctx context.Context, ownerID string, f TaskFilter) ([]models.Task, int, error) {
	where := "user_id = ?"
	args := []any{ownerID}
	if f.Completed != nil {
		where += " AND completed = ?"
		args = append(args, *f.Completed)
	}
	if f.Priority != "" {
		where += " AND priority = ?"
		args = append(args, f.Priority)
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := ListSortFields[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}

	query := "SELECT " + taskCols + " FROM tasks WHERE " + where +
		" ORDER BY " + column + " " + direction + " LIMIT ? OFFSET ?"
	rows, err := s.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}
	return tasks, total, rows.Err()
}

func (s *SQLite) UpdateTask(ctx context.Context, ownerID, id string, patch TaskPatch, now time.Time) (models.Task, error) {
	set := []string{"updated_at = ?"}
	args := []any{now}
	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, *patch.Priority)
	}
	if patch.Completed != nil {
		set = append(set, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if patch.DueDate != nil {
		set = append(set, "due_date = ?")
		args = append(args, *patch.DueDate)
	}

	query := "UPDATE tasks SET " + strings.Join(set, ", ") +
		" WHERE id = ? AND user_id = ? RETURNING " + taskCols
	row := s.db.QueryRowContext(ctx, query, append(args, id, ownerID)...)
	return scanTask(row)
}

func (s *SQLite) DeleteTask(ctx context.Context, ownerID, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ? RETURNING "+taskCols, id, ownerID)
	return scanTask(row)
}

func (s *SQLite) ToggleTask(ctx context.Context, ownerID, id string, now time.Time) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ? AND user_id = ? RETURNING "+taskCols,
		now, id, ownerID)
	return scanTask(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func scanTask(row scanner) (models.Task, error) {
	var task models.Task
	var due sql.NullTime
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.Priority, &task.Completed, &due, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, err
	}
	if due.Valid {
		task.DueDate = &due.Time
	}
	return task, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
