package handler

import (
	"github.com/deppfellow/world-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus registry of the server.
type MetricsHandler struct {
	Handler
	handler echo.HandlerFunc
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	h := &MetricsHandler{Handler: NewHandler(s)}
	if s.Metrics != nil {
		h.handler = echo.WrapHandler(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{
			Registry: s.Metrics.Registry,
		}))
	}
	return h
}

func (h *MetricsHandler) Serve(c echo.Context) error {
	if h.handler == nil {
		return echo.ErrNotFound
	}
	return h.handler(c)
}
