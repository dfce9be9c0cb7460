package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/world-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Column lists are spelled out so the column -> field mapping declared
// by the db tags on model.City / model.CountryPopulation is the only
// mapping there is.
const (
	findCityByNameQuery = `
SELECT "ID", "Name", "CountryCode", "District", "Population"
FROM city
WHERE "Name" = $1
ORDER BY "ID"
LIMIT 1`

	findCountryPopulationQuery = `
SELECT "Code", "Population"
FROM country
WHERE "Code" = $1`

	insertCityQuery = `
INSERT INTO city ("Name", "CountryCode", "District", "Population")
VALUES ($1, $2, $3, $4)
RETURNING "ID"`
)

// CityRepository is the store adapter for the city and country tables.
//
// Each method is a single round trip: pgxpool acquires a connection for
// the query and releases it when the rows are closed, on success and on
// failure alike.
type CityRepository struct {
	pool *pgxpool.Pool
}

func NewCityRepository(pool *pgxpool.Pool) *CityRepository {
	return &CityRepository{pool: pool}
}

// FindCityByName returns the city whose name matches exactly
// (case-sensitive), or nil when there is none.
//
// The table carries no uniqueness constraint on names; when several rows
// match, the one with the lowest ID wins.
func (r *CityRepository) FindCityByName(ctx context.Context, name string) (*model.City, error) {
	rows, err := r.pool.Query(ctx, findCityByNameQuery, name)
	if err != nil {
		return nil, &model.StoreError{Op: "find city by name", Err: err}
	}

	city, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.City])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &model.StoreError{Op: "find city by name", Err: err}
	}

	return &city, nil
}

// FindCountryPopulation returns the population of the country with the
// given code. A missing country is model.ErrNotFound.
func (r *CityRepository) FindCountryPopulation(ctx context.Context, code string) (model.CountryPopulation, error) {
	rows, err := r.pool.Query(ctx, findCountryPopulationQuery, code)
	if err != nil {
		return model.CountryPopulation{}, &model.StoreError{Op: "find country population", Err: err}
	}

	country, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CountryPopulation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CountryPopulation{}, fmt.Errorf("country %q: %w", code, model.ErrNotFound)
		}
		return model.CountryPopulation{}, &model.StoreError{Op: "find country population", Err: err}
	}

	return country, nil
}

// InsertCity persists a draft city and returns the generated ID.
// Duplicate names are allowed.
func (r *CityRepository) InsertCity(ctx context.Context, draft model.City) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, insertCityQuery,
		draft.Name,
		draft.CountryCode,
		draft.District,
		draft.Population,
	).Scan(&id)
	if err != nil {
		return 0, &model.StoreError{Op: "insert city", Err: err}
	}

	return id, nil
}
