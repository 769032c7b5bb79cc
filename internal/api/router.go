package api

import (
	"database/sql"
	"net/http"

	"github.com/avelar/taskhub-be/internal/api/handlers"
	"github.com/avelar/taskhub-be/internal/api/respond"
	"github.com/avelar/taskhub-be/internal/auth"
	"github.com/avelar/taskhub-be/internal/config"
	"github.com/avelar/taskhub-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, db *sql.DB, tokens *auth.TokenService, userService services.UserServiceProvider, taskService services.TaskServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	taskHandler := handlers.NewTaskHandler(taskService)
	healthHandler := handlers.NewHealthHandler(db, cfg.Environment)

	// The access guard protects every task route and the profile route. It
	// never runs for signup, login or health.
	guard := auth.Middleware(tokens, userService)

	r.Get("/", healthHandler.APIInfo)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.APIInfo)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.With(guard).Get("/me", authHandler.Me)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(guard)
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
				r.Patch("/toggle", taskHandler.Toggle)
			})
		})

		r.Route("/health", func(r chi.Router) {
			r.Get("/", healthHandler.Health)
			r.Get("/db", healthHandler.Database)
			r.Get("/full", healthHandler.Full)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Fail(w, http.StatusNotFound, "Route not found")
	})

	return r
}
