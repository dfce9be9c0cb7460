package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/world-api/internal/metrics"
	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CityFinder looks a city up by its exact name. A nil city with a nil
// error means there is no such city.
type CityFinder interface {
	FindCityByName(ctx context.Context, name string) (*model.City, error)
}

// CountryPopulationFinder reads a country's population by code.
type CountryPopulationFinder interface {
	FindCountryPopulation(ctx context.Context, code string) (model.CountryPopulation, error)
}

// CityInserter persists a draft city and returns its generated ID.
type CityInserter interface {
	InsertCity(ctx context.Context, draft model.City) (int64, error)
}

// CityEnqueuer schedules background work for a registered city.
type CityEnqueuer interface {
	EnqueueCityRegistered(ctx context.Context, city model.City) error
}

// LookupService resolves cities by name.
type LookupService struct {
	store   CityFinder
	metrics *metrics.Metrics
}

func NewLookupService(store CityFinder, m *metrics.Metrics) *LookupService {
	return &LookupService{store: store, metrics: m}
}

// Lookup returns the city named exactly name (case-sensitive), or nil
// when there is none. Store failures are returned unchanged.
func (s *LookupService) Lookup(ctx context.Context, name string) (*model.City, error) {
	start := time.Now()

	city, err := s.store.FindCityByName(ctx, name)
	switch {
	case err != nil:
		s.metrics.ObserveLookup(start, metrics.OutcomeError)
		return nil, err
	case city == nil:
		s.metrics.ObserveLookup(start, metrics.OutcomeNotFound)
		return nil, nil
	}

	s.metrics.ObserveLookup(start, metrics.OutcomeFound)
	return city, nil
}

// PopulationRatio returns cityPopulation as a percentage of
// countryPopulation, unrounded. A zero country population yields
// model.ErrDivisionUndefined.
func PopulationRatio(cityPopulation, countryPopulation int64) (float64, error) {
	if countryPopulation == 0 {
		return 0, model.ErrDivisionUndefined
	}
	return float64(cityPopulation) / float64(countryPopulation) * 100, nil
}

// RatioService computes a city's share of its country's population.
type RatioService struct {
	store   CountryPopulationFinder
	metrics *metrics.Metrics
}

func NewRatioService(store CountryPopulationFinder, m *metrics.Metrics) *RatioService {
	return &RatioService{store: store, metrics: m}
}

// ComputeRatio reads the population of city's country and returns the
// city's share of it in percent.
//
// The city and country are read in separate round trips; a concurrent
// write to either may be observed between them.
func (s *RatioService) ComputeRatio(ctx context.Context, city model.City) (float64, error) {
	country, err := s.store.FindCountryPopulation(ctx, city.CountryCode)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.metrics.IncrementRatio(metrics.OutcomeNotFound)
		} else {
			s.metrics.IncrementRatio(metrics.OutcomeError)
		}
		return 0, err
	}

	ratio, err := PopulationRatio(city.Population, country.Population)
	if err != nil {
		s.metrics.IncrementRatio(metrics.OutcomeUndefined)
		return 0, err
	}

	s.metrics.IncrementRatio(metrics.OutcomeOK)
	return ratio, nil
}

// RegistrationService validates and persists new cities.
type RegistrationService struct {
	store    CityInserter
	jobs     CityEnqueuer
	validate *validator.Validate
	metrics  *metrics.Metrics
}

// NewRegistrationService creates a RegistrationService. jobs may be nil.
func NewRegistrationService(store CityInserter, jobs CityEnqueuer, m *metrics.Metrics) *RegistrationService {
	return &RegistrationService{
		store:    store,
		jobs:     jobs,
		validate: validation.New(),
		metrics:  m,
	}
}

// Register validates draft and stores it, returning the draft with the
// generated ID. Invalid drafts never reach the store and are reported
// as *model.ValidationError.
//
// Enqueueing the follow-up task is best-effort: its failure is logged
// and the registration still succeeds.
func (s *RegistrationService) Register(ctx context.Context, draft model.City) (model.City, error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	if err := s.validate.Struct(draft); err != nil {
		s.metrics.ObserveRegister(start, metrics.OutcomeInvalid)
		return model.City{}, &model.ValidationError{Err: err}
	}

	id, err := s.store.InsertCity(ctx, draft)
	if err != nil {
		s.metrics.ObserveRegister(start, metrics.OutcomeError)
		return model.City{}, err
	}

	city := draft
	city.ID = id
	s.metrics.ObserveRegister(start, metrics.OutcomeOK)

	logger.Info().
		Int64("city_id", city.ID).
		Str("city", city.Name).
		Str("country_code", city.CountryCode).
		Msg("city registered")

	if s.jobs != nil {
		if err := s.jobs.EnqueueCityRegistered(ctx, city); err != nil {
			logger.Warn().Err(err).Int64("city_id", city.ID).Msg("failed to enqueue city registered task")
		}
	}

	return city, nil
}
