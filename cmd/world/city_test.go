package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/repository"
	"github.com/deppfellow/world-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *repository.MemoryCityStore {
	t.Helper()

	store := repository.NewMemoryCityStore()
	store.PutCountry("JPN", 126714000)
	_, err := store.InsertCity(context.Background(), model.City{
		Name: "Tokyo", CountryCode: "JPN", District: "Tokyo-to", Population: 7980230,
	})
	require.NoError(t, err)
	_, err = store.InsertCity(context.Background(), model.City{
		Name: "Atlantis", CountryCode: "ATL", District: "Sea", Population: 10,
	})
	require.NoError(t, err)
	return store
}

func describe(t *testing.T, store *repository.MemoryCityStore, name string) string {
	t.Helper()

	var buf bytes.Buffer
	err := describeCity(context.Background(), &buf, name,
		service.NewLookupService(store, nil),
		service.NewRatioService(store, nil),
	)
	require.NoError(t, err)
	return buf.String()
}

func TestDescribeCity(t *testing.T) {
	store := seededStore(t)

	assert.Equal(t,
		"Tokyo's population is 7980230\nThis is 6.30% of JPN's population\n",
		describe(t, store, defaultCityName))

	assert.Equal(t, "no such city Name = 'Nowhere'\n", describe(t, store, "Nowhere"))

	assert.Contains(t, describe(t, store, "Atlantis"), "share of ATL's population is unavailable")
}

func TestDescribeCityJSON(t *testing.T) {
	cityJSON = true
	t.Cleanup(func() { cityJSON = false })

	out := describe(t, seededStore(t), "Tokyo")
	assert.Contains(t, out, `"name": "Tokyo"`)
	assert.Contains(t, out, `"ratio": 6.29`)
}
