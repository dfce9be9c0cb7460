package service

import (
	"github.com/deppfellow/world-api/internal/repository"
	"github.com/deppfellow/world-api/internal/server"
)

// CityStore is everything the city services need from storage. It is
// satisfied by repository.CityRepository and repository.MemoryCityStore.
type CityStore interface {
	CityFinder
	CountryPopulationFinder
	CityInserter
}

type Services struct {
	Lookup       *LookupService
	Ratio        *RatioService
	Registration *RegistrationService
	Students     *StudentService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return NewServicesWithStore(s, repos.City)
}

// NewServicesWithStore wires the services on top of store. When the
// server runs a job service, registrations enqueue follow-up tasks and
// the job handlers get the ratio calculator.
func NewServicesWithStore(s *server.Server, store CityStore) (*Services, error) {
	students, err := NewStudentService()
	if err != nil {
		return nil, err
	}

	ratio := NewRatioService(store, s.Metrics)

	// A nil *job.JobService must not end up inside a non-nil interface.
	var enqueuer CityEnqueuer
	if s.Job != nil {
		enqueuer = s.Job
		s.Job.InitHandlers(ratio)
	}

	return &Services{
		Lookup:       NewLookupService(store, s.Metrics),
		Ratio:        ratio,
		Registration: NewRegistrationService(store, enqueuer, s.Metrics),
		Students:     students,
	}, nil
}
