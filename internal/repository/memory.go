package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/deppfellow/world-api/internal/model"
)

// MemoryCityStore is an in-memory implementation of the city store,
// safe for concurrent use. It mirrors CityRepository's semantics:
// exact-match lookups, first-inserted wins on duplicate names, IDs
// assigned from 1 upwards.
type MemoryCityStore struct {
	mu        sync.RWMutex
	cities    []model.City
	countries map[string]int64
	nextID    int64
}

func NewMemoryCityStore() *MemoryCityStore {
	return &MemoryCityStore{
		countries: make(map[string]int64),
		nextID:    1,
	}
}

// PutCountry sets the population of a country.
func (s *MemoryCityStore) PutCountry(code string, population int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[code] = population
}

func (s *MemoryCityStore) FindCityByName(_ context.Context, name string) (*model.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cities {
		if c.Name == name {
			city := c
			return &city, nil
		}
	}
	return nil, nil
}

func (s *MemoryCityStore) FindCountryPopulation(_ context.Context, code string) (model.CountryPopulation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	population, ok := s.countries[code]
	if !ok {
		return model.CountryPopulation{}, fmt.Errorf("country %q: %w", code, model.ErrNotFound)
	}
	return model.CountryPopulation{Code: code, Population: population}, nil
}

func (s *MemoryCityStore) InsertCity(_ context.Context, draft model.City) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = s.nextID
	s.nextID++
	s.cities = append(s.cities, draft)
	return draft.ID, nil
}
