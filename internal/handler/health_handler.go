package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "database unavailable"
// @Router /healthz [get]
func (h *HealthHandler) Healthz(c echo.Context) error {
	if err := h.db.PingContext(c.Request().Context()); err != nil {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "ok")
}
