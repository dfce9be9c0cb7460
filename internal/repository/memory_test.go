package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCityStoreInsertAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCityStore()

	draft := model.City{Name: "Testville", CountryCode: "TST", District: "TestDistrict", Population: 1000}
	id, err := store.InsertCity(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	found, err := store.FindCityByName(ctx, "Testville")
	require.NoError(t, err)
	require.NotNil(t, found)
	draft.ID = id
	assert.Equal(t, draft, *found)

	// Exact, case-sensitive match only.
	missing, err := store.FindCityByName(ctx, "testville")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryCityStoreDuplicateNamesKeepFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCityStore()

	first, err := store.InsertCity(ctx, model.City{Name: "Springfield", CountryCode: "USA", District: "Illinois"})
	require.NoError(t, err)
	second, err := store.InsertCity(ctx, model.City{Name: "Springfield", CountryCode: "USA", District: "Missouri"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	found, err := store.FindCityByName(ctx, "Springfield")
	require.NoError(t, err)
	assert.Equal(t, first, found.ID)
}

func TestMemoryCityStoreCountry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCityStore()
	store.PutCountry("TST", 100000)

	country, err := store.FindCountryPopulation(ctx, "TST")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), country.Population)

	_, err = store.FindCountryPopulation(ctx, "XXX")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoryCityStoreConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCityStore()

	const goroutines = 50
	ids := make(chan int64, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.InsertCity(ctx, model.City{Name: "Concurrent", CountryCode: "TST", District: "D"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, goroutines)
}
