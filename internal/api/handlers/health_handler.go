package handlers

import (
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/avelar/taskhub-be/internal/api/respond"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const apiVersion = "1.0.0"

// HealthHandler reports service, database and system health.
type HealthHandler struct {
	db      *sql.DB
	env     string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env, started: time.Now()}
}

// APIInfo describes the service and its endpoint groups.
func (h *HealthHandler) APIInfo(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Task Manager Backend API is running!",
		"version": apiVersion,
		"endpoints": map[string]string{
			"auth":   "/api/auth",
			"tasks":  "/api/tasks",
			"health": "/api/health",
		},
	})
}

// Health reports basic liveness.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "API is healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.env,
		"version":     apiVersion,
	})
}

// Database reports connectivity to the backing store.
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		respond.JSON(w, http.StatusInternalServerError, map[string]any{
			"success":   false,
			"message":   "Database health check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     err.Error(),
		})
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Database health check completed",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database": map[string]any{
			"status": "connected",
		},
	})
}

// Full reports liveness, database connectivity and system resource usage.
// Returns 503 when any dependency is unhealthy.
func (h *HealthHandler) Full(w http.ResponseWriter, r *http.Request) {
	dbStatus := "healthy"
	if err := h.db.PingContext(r.Context()); err != nil {
		dbStatus = "unhealthy"
	}

	system := map[string]any{
		"platform":  runtime.GOOS,
		"goVersion": runtime.Version(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory"] = map[string]any{
			"total":       vm.Total,
			"available":   vm.Available,
			"usedPercent": vm.UsedPercent,
		}
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		system["cpuPercent"] = percents[0]
	}

	code := http.StatusOK
	if dbStatus != "healthy" {
		code = http.StatusServiceUnavailable
	}

	respond.JSON(w, code, map[string]any{
		"success":     dbStatus == "healthy",
		"message":     "Full health check completed",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.started).Seconds(),
		"environment": h.env,
		"version":     apiVersion,
		"system":      system,
		"database": map[string]any{
			"status": dbStatus,
		},
		"services": map[string]string{
			"api":            "healthy",
			"database":       dbStatus,
			"authentication": "healthy",
		},
	})
}
