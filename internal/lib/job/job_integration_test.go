//go:build integration

package job

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/world-api/internal/config"
	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/testutil/containers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingRatio struct {
	cities chan model.City
}

func (r *recordingRatio) ComputeRatio(_ context.Context, city model.City) (float64, error) {
	r.cities <- city
	return 1.0, nil
}

func TestCityRegisteredRoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	logger := zerolog.Nop()

	cfg := &config.Config{Redis: config.RedisConfig{Address: rc.Addr}}
	j := NewJobService(&logger, cfg)

	ratio := &recordingRatio{cities: make(chan model.City, 1)}
	j.InitHandlers(ratio)
	require.NoError(t, j.Start())
	t.Cleanup(j.Stop)

	city := model.City{ID: 42, Name: "Testville", CountryCode: "TST", District: "TestDistrict", Population: 1000}
	require.NoError(t, j.EnqueueCityRegistered(context.Background(), city))

	select {
	case got := <-ratio.cities:
		require.Equal(t, city, got)
	case <-time.After(30 * time.Second):
		t.Fatal("city registered task was not processed")
	}
}
