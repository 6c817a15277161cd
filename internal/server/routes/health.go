package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthRoutes exposes liveness and metrics endpoints.
type HealthRoutes struct {
	db       Pinger
	gatherer prometheus.Gatherer
}

// NewHealthRoutes constructs health routes. A nil gatherer uses the default registry.
func NewHealthRoutes(db Pinger, gatherer prometheus.Gatherer) *HealthRoutes {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &HealthRoutes{db: db, gatherer: gatherer}
}

// RegisterRoutes registers health routes.
func (h *HealthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/healthz", h.handleHealth)
	s.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

func (h *HealthRoutes) handleHealth(c echo.Context) error {
	if h.db != nil {
		if err := h.db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
