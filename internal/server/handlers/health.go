package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// healthCheckTimeout ограничивает проверку брокера
const healthCheckTimeout = 2 * time.Second

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	check   func(ctx context.Context) error
	version string
}

// NewHealthHandler создает handler для health check.
// check проверяет доступность брокера, nil - без проверки.
func NewHealthHandler(version string, check func(ctx context.Context) error, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		check:   check,
		version: version,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Version: h.version}
	status := http.StatusOK

	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.check(ctx); err != nil {
			h.logger.Warn("Health check failed", slog.Any("error", err))
			resp.Status = "unavailable"
			resp.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, resp, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}
