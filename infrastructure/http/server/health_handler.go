package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gachip90/employee-task-management-be/observability"
)

type HealthHandler struct {
	log     *slog.Logger
	monitor *observability.Monitor
}

func NewHealthHandler(log *slog.Logger, monitor *observability.Monitor) *HealthHandler {
	return &HealthHandler{log: log, monitor: monitor}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.log, w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"stats":     h.monitor.Snapshot(),
	})
}
