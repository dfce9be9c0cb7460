// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
package handler

import (
	"github.com/deppfellow/world-api/internal/server"
	"github.com/deppfellow/world-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	Metrics  *MetricsHandler
	City     *CityHandler
	Exercise *ExerciseHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Metrics:  NewMetricsHandler(s),
		City:     NewCityHandler(s, services),
		Exercise: NewExerciseHandler(s, services),
	}
}
