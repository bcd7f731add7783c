package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/quadrantio/quadrant-api/internal/api/shared"
	"github.com/quadrantio/quadrant-api/internal/redact"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a HealthHandler probing the given database.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health. It always responds 200; an unreachable database
// degrades the reported status instead of failing the request, so the
// process itself still reads as alive.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Database: "ok"}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Warn("health check: database unreachable", "error", redact.Error(err))
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
