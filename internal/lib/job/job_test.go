package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRatio struct {
	mock.Mock
}

func (m *mockRatio) ComputeRatio(ctx context.Context, city model.City) (float64, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(float64), args.Error(1)
}

func newTestJobService(ratio RatioCalculator) *JobService {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	j.InitHandlers(ratio)
	return j
}

var testville = model.City{ID: 7, Name: "Testville", CountryCode: "TST", District: "TestDistrict", Population: 1000}

func TestNewCityRegisteredTask(t *testing.T) {
	task, err := NewCityRegisteredTask(testville)
	require.NoError(t, err)

	assert.Equal(t, TaskCityRegistered, task.Type())

	var p CityRegisteredPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, testville, p.City)
}

func TestHandleCityRegisteredTask(t *testing.T) {
	task, err := NewCityRegisteredTask(testville)
	require.NoError(t, err)

	t.Run("computes ratio", func(t *testing.T) {
		ratio := new(mockRatio)
		ratio.On("ComputeRatio", mock.Anything, testville).Return(1.0, nil).Once()

		err := newTestJobService(ratio).handleCityRegisteredTask(context.Background(), task)
		assert.NoError(t, err)
		ratio.AssertExpectations(t)
	})

	t.Run("permanent conditions are not retried", func(t *testing.T) {
		for _, cause := range []error{model.ErrNotFound, model.ErrDivisionUndefined} {
			ratio := new(mockRatio)
			ratio.On("ComputeRatio", mock.Anything, testville).Return(0.0, cause).Once()

			err := newTestJobService(ratio).handleCityRegisteredTask(context.Background(), task)
			assert.NoError(t, err)
		}
	})

	t.Run("store failure is retried", func(t *testing.T) {
		storeErr := &model.StoreError{Op: "find country population", Err: errors.New("connection reset")}
		ratio := new(mockRatio)
		ratio.On("ComputeRatio", mock.Anything, testville).Return(0.0, storeErr).Once()

		err := newTestJobService(ratio).handleCityRegisteredTask(context.Background(), task)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		ratio := new(mockRatio)
		bad := asynq.NewTask(TaskCityRegistered, []byte("{"))

		err := newTestJobService(ratio).handleCityRegisteredTask(context.Background(), bad)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		ratio.AssertNotCalled(t, "ComputeRatio", mock.Anything, mock.Anything)
	})
}

func TestStartRequiresHandlers(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}
	assert.Error(t, j.Start())
}
