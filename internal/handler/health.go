package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/world-api/internal/middleware"
	"github.com/deppfellow/world-api/internal/server"
	"github.com/labstack/echo/v4"
)

// CheckFunc checks one dependency.
type CheckFunc func(ctx context.Context) error

// dependencyCheck is a named check. Required checks turn the overall
// status unhealthy when they fail; optional ones (Redis) only report.
type dependencyCheck struct {
	name     string
	required bool
	check    CheckFunc
}

// HealthHandler answers GET /status with the state of the service and
// its dependencies.
type HealthHandler struct {
	Handler
	checks  []dependencyCheck
	timeout time.Duration
}

// NewHealthHandler registers the checks enabled in the observability
// config for the dependencies the server actually has.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}

	hc := s.Config.Observability.HealthChecks
	if !hc.Enabled {
		return h
	}
	if hc.Timeout > 0 {
		h.timeout = hc.Timeout
	}

	if s.DB != nil && hc.Has("database") {
		h.AddCheck("database", true, s.DB.Pool.Ping)
	}
	if s.Redis != nil && hc.Has("redis") {
		h.AddCheck("redis", false, func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		})
	}

	return h
}

// AddCheck registers an extra dependency check.
func (h *HealthHandler) AddCheck(name string, required bool, check CheckFunc) {
	h.checks = append(h.checks, dependencyCheck{name: name, required: required, check: check})
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth returns 200 when every required check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for _, dc := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := dc.check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err == nil {
			response.Checks[dc.name] = checkResult{Status: "healthy", ResponseTime: elapsed.String()}
			logger.Debug().Str("check", dc.name).Dur("response_time", elapsed).Msg("health check passed")
			continue
		}

		response.Checks[dc.name] = checkResult{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        "unhealthy",
		}
		if dc.required {
			response.Status = "unhealthy"
		}

		logger.Error().
			Err(err).
			Str("check", dc.name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       dc.name,
				"operation":        "health_check",
				"error_type":       dc.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}
