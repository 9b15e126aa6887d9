package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/matchsync/internal/dispatch"
)

// SubscriptionStatus is the state of one processed subscription
type SubscriptionStatus struct {
	Topic        string         `json:"topic"`
	Subscription string         `json:"subscription"`
	Mode         string         `json:"mode"`
	Stats        dispatch.Stats `json:"stats"`
}

// StatusSource lists the processed subscriptions
type StatusSource interface {
	Status() []SubscriptionStatus
}

// StatusHandler отдает счетчики обработки запросов
type StatusHandler struct {
	source StatusSource
	logger *slog.Logger
}

// NewStatusHandler создает handler статуса
func NewStatusHandler(source StatusSource, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{source: source, logger: logger}
}

// StatusResponse представляет ответ статуса
type StatusResponse struct {
	Subscriptions []SubscriptionStatus `json:"subscriptions"`
}

// Status обрабатывает GET /api/v1/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Subscriptions: h.source.Status()}
	if resp.Subscriptions == nil {
		resp.Subscriptions = []SubscriptionStatus{}
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}
