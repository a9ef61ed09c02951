package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Version is reported by the health endpoint; overridden at link time
var Version = "dev"

// Check probes one backing dependency
type Check func(ctx context.Context) error

// HealthHandler reports liveness plus the state of registered dependencies
type HealthHandler struct {
	logger *slog.Logger
	checks map[string]Check
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		checks: make(map[string]Check),
	}
}

// Register adds a named dependency check, e.g. "postgres" or "redis"
func (h *HealthHandler) Register(name string, check Check) {
	h.checks[name] = check
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// ServeHTTP handles GET /health. Any failing check turns the response into a 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
	}
	status := http.StatusOK

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		response.Dependencies = make(map[string]string, len(names))
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, name := range names {
			if err := h.checks[name](ctx); err != nil {
				h.logger.Warn("health check failed", "dependency", name, "error", err)
				response.Dependencies[name] = "down"
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Dependencies[name] = "up"
		}
	}

	WriteJSON(w, status, response, h.logger)
}
