package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/hibiken/asynq"
)

// RatioCalculator computes a city's share of its country's population.
type RatioCalculator interface {
	ComputeRatio(ctx context.Context, city model.City) (float64, error)
}

// InitHandlers sets the dependencies the task handlers need. It must be
// called before Start.
func (j *JobService) InitHandlers(ratio RatioCalculator) {
	j.ratio = ratio
}

// handleCityRegisteredTask computes and logs the population share of a
// newly registered city.
//
// A missing country or a zero country population are permanent
// conditions and are not retried; anything else is returned to asynq
// so the task is retried.
func (j *JobService) handleCityRegisteredTask(ctx context.Context, t *asynq.Task) error {
	var p CityRegisteredPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal city registered payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskCityRegistered).
		Int64("city_id", p.City.ID).
		Str("city", p.City.Name).
		Str("country_code", p.City.CountryCode).
		Logger()

	ratio, err := j.ratio.ComputeRatio(ctx, p.City)
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrDivisionUndefined):
		log.Warn().Err(err).Msg("population share unavailable for registered city")
		return nil
	case err != nil:
		log.Error().Err(err).Msg("failed to compute population share")
		return err
	}

	log.Info().
		Float64("ratio", ratio).
		Msg("registered city population share")

	return nil
}
