package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/hibiken/asynq"
)

// TaskCityRegistered is the task type stored in Redis after a city is
// registered.
const TaskCityRegistered = "city:registered"

// CityRegisteredPayload is the JSON payload of TaskCityRegistered.
type CityRegisteredPayload struct {
	City model.City `json:"city"`
}

// NewCityRegisteredTask builds the task for a freshly persisted city.
//
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue(default)
//   - Timeout(30s)
func NewCityRegisteredTask(city model.City) (*asynq.Task, error) {
	payload, err := json.Marshal(CityRegisteredPayload{City: city})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskCityRegistered,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}
