package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avelar/taskhub-be/internal/auth"
	"github.com/avelar/taskhub-be/internal/config"
	"github.com/avelar/taskhub-be/internal/database"
	"github.com/avelar/taskhub-be/internal/models"
	"github.com/avelar/taskhub-be/internal/services"
	"github.com/avelar/taskhub-be/internal/storage"
)

type stubUserService struct{}

func (stubUserService) Signup(ctx context.Context, email, password, name string) (models.User, error) {
	return models.User{}, nil
}

func (stubUserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	return models.User{}, nil
}

func (stubUserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return models.User{}, storage.ErrNotFound
}

type stubTaskService struct{}

func (stubTaskService) Create(ctx context.Context, ownerID string, in services.TaskInput) (models.Task, error) {
	return models.Task{}, nil
}

func (stubTaskService) List(ctx context.Context, ownerID string, p services.ListParams) ([]models.Task, models.Pagination, error) {
	return nil, models.Pagination{}, nil
}

func (stubTaskService) Get(ctx context.Context, ownerID, id string) (models.Task, error) {
	return models.Task{}, nil
}

func (stubTaskService) Update(ctx context.Context, ownerID, id string, patch storage.TaskPatch) (models.Task, error) {
	return models.Task{}, nil
}

func (stubTaskService) Delete(ctx context.Context, ownerID, id string) (models.Task, error) {
	return models.Task{}, nil
}

func (stubTaskService) Toggle(ctx context.Context, ownerID, id string) (models.Task, error) {
	return models.Task{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Environment:    "test",
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewRouter(cfg, db, tokens, stubUserService{}, stubTaskService{})
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"api info", http.MethodGet, "/", http.StatusOK, "Task Manager Backend API is running!"},
		{"api info under /api", http.MethodGet, "/api", http.StatusOK, "Task Manager Backend API is running!"},
		{"health", http.MethodGet, "/api/health", http.StatusOK, "API is healthy"},
		{"db health", http.MethodGet, "/api/health/db", http.StatusOK, "Database health check completed"},
		{"full health", http.MethodGet, "/api/health/full", http.StatusOK, "Full health check completed"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, "Route not found"},
		{"tasks require auth", http.MethodGet, "/api/tasks", http.StatusUnauthorized, "Authorization header required"},
		{"me requires auth", http.MethodGet, "/api/auth/me", http.StatusUnauthorized, "Authorization header required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestRouterRevokedUserRejected(t *testing.T) {
	router := newTestRouter(t)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	// A well-signed token for an account that no longer exists.
	token, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
