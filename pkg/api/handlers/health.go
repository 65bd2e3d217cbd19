package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of storage and cache.
type HealthHandler struct {
	storage Pinger
	cache   Pinger
}

// NewHealthHandler creates a health handler. cache is nil when caching is
// disabled.
func NewHealthHandler(storage, cache Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Healthy"
// @Failure 503 {object} map[string]string "A dependency is down"
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]string{
		"status":   "healthy",
		"database": "up",
		"cache":    "disabled",
	}

	if err := h.storage.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
		body["database"] = "down"
	}
	if h.cache != nil {
		body["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["cache"] = "down"
		}
	}

	return c.JSON(status, body)
}
