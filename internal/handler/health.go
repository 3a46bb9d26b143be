package handler

import (
	"log/slog"
	"net/http"

	"github.com/lgsobral/eduhub/internal/apperror"
)

// Pinger is the slice of the database the health check needs.
type Pinger interface {
	Ping() error
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// healthResponse is the liveness indicator body.
type healthResponse struct {
	Status string `json:"status"`
}

// HandleHealth reports whether the service and its store are up.
//
// HTTP: GET /health
//
// A failed store ping answers 503 so an orchestrator's probe sees the
// instance as unhealthy rather than "up but unable to serve anything".
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		h.logger.Error("health check: store unreachable", slog.String("error", err.Error()))
		writeError(w, apperror.StoreUnavailable("datastore is unreachable"))
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
