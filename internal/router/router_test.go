package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/world-api/internal/config"
	"github.com/deppfellow/world-api/internal/errs"
	"github.com/deppfellow/world-api/internal/handler"
	"github.com/deppfellow/world-api/internal/metrics"
	"github.com/deppfellow/world-api/internal/middleware"
	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/repository"
	"github.com/deppfellow/world-api/internal/server"
	"github.com/deppfellow/world-api/internal/service"
	"github.com/deppfellow/world-api/internal/validation"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	err error
}

func (f failingStore) FindCityByName(context.Context, string) (*model.City, error) {
	return nil, f.err
}

func (f failingStore) FindCountryPopulation(context.Context, string) (model.CountryPopulation, error) {
	return model.CountryPopulation{}, f.err
}

func (f failingStore) InsertCity(context.Context, model.City) (int64, error) {
	return 0, f.err
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &logger,
		Metrics: metrics.New(),
	}
}

func newTestRouter(t *testing.T, store service.CityStore) (*echo.Echo, *server.Server) {
	t.Helper()

	s := newTestServer()
	services, err := service.NewServicesWithStore(s, store)
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services)), s
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.Response {
	t.Helper()
	var body errs.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCityNotFound(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodGet, "/cities/Nowhere", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "No such city Name = Nowhere", body.Error)
	assert.Contains(t, body.Message, "Nowhere")
	assert.Equal(t, http.StatusNotFound, body.Status)
}

func TestRegisterLookupAndRatio(t *testing.T) {
	store := repository.NewMemoryCityStore()
	store.PutCountry("TST", 100000)
	r, _ := newTestRouter(t, store)

	rec := do(r, http.MethodPost, "/cities",
		`{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":1000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created model.City
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Testville", created.Name)

	rec = do(r, http.MethodGet, "/cities/Testville", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var found model.City
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, created, found)

	rec = do(r, http.MethodGet, "/cities/Testville/ratio", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ratio handler.CityRatioResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ratio))
	assert.Equal(t, created, ratio.City)
	assert.Equal(t, 1.0, ratio.Ratio)
}

func TestLookupEscapedCityNames(t *testing.T) {
	store := repository.NewMemoryCityStore()
	store.PutCountry("TST", 100000)
	r, _ := newTestRouter(t, store)

	cases := map[string]string{
		"Foo/Bar":       "/cities/Foo%2FBar",
		"New York":      "/cities/New%20York",
		"Ciudad Juárez": "/cities/Ciudad%20Ju%C3%A1rez",
		"50%":           "/cities/50%25",
		"A/B 100%":      "/cities/A%2FB%20100%25",
	}

	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			body, err := json.Marshal(model.City{Name: name, CountryCode: "TST", District: "D", Population: 1000})
			require.NoError(t, err)

			rec := do(r, http.MethodPost, "/cities", string(body))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var created model.City
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

			rec = do(r, http.MethodGet, target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var found model.City
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
			assert.Equal(t, created, found)

			rec = do(r, http.MethodGet, target+"/ratio", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}

	rec := do(r, http.MethodGet, "/cities/No%2FWhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No such city Name = No/Where", decodeError(t, rec).Error)
}

func TestCityRatioErrors(t *testing.T) {
	store := repository.NewMemoryCityStore()
	store.PutCountry("ZZZ", 0)
	_, err := store.InsertCity(context.Background(), model.City{Name: "Ghost", CountryCode: "ZZZ", District: "D", Population: 1})
	require.NoError(t, err)
	_, err = store.InsertCity(context.Background(), model.City{Name: "Orphan", CountryCode: "QQQ", District: "D", Population: 1})
	require.NoError(t, err)

	r, _ := newTestRouter(t, store)

	rec := do(r, http.MethodGet, "/cities/Ghost/ratio", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(r, http.MethodGet, "/cities/Orphan/ratio", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "QQQ")

	rec = do(r, http.MethodGet, "/cities/Nowhere/ratio", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "Nowhere")
}

func TestCreateCityRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"negative population": `{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":-1}`,
		"missing population":  `{"name":"Testville","countryCode":"TST","district":"TestDistrict"}`,
		"bad country code":    `{"name":"Testville","countryCode":"TESTY","district":"TestDistrict","population":1}`,
		"malformed json":      `{"name":"Testville",`,
		"wrong type":          `{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":"lots"}`,
		"population overflow": `{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":3000000000}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := repository.NewMemoryCityStore()
			r, _ := newTestRouter(t, store)

			rec := do(r, http.MethodPost, "/cities", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec).Error)

			city, err := store.FindCityByName(context.Background(), "Testville")
			require.NoError(t, err)
			assert.Nil(t, city)
		})
	}
}

func TestCreateCityListsFieldErrors(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodPost, "/cities", `{"countryCode":"TST","district":"D","population":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "population", Error: "must be at least 0"},
	}, body.Errors)

	rec = do(r, http.MethodPost, "/cities",
		`{"name":"Bigville","countryCode":"TST","district":"D","population":3000000000}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []errs.FieldError{
		{Field: "population", Error: "must not exceed 2147483647"},
	}, decodeError(t, rec).Errors)
}

func TestCreateCityBodyTypeMismatch(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodPost, "/cities",
		`{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":"lots"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, validation.InvalidBodyMessage, body.Error)
	assert.Equal(t, []errs.FieldError{{Field: "population", Error: "must be an integer"}}, body.Errors)
	assert.NotContains(t, rec.Body.String(), "offset")
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	storeErr := &model.StoreError{Op: "find city by name", Err: errors.New("dial tcp 10.0.0.7:5432: connection refused")}
	r, _ := newTestRouter(t, failingStore{err: storeErr})

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/cities/Tokyo", ""},
		{http.MethodGet, "/cities/Tokyo/ratio", ""},
		{http.MethodPost, "/cities", `{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":1000}`},
	} {
		rec := do(r, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.target)
		assert.Equal(t, errs.InternalServerErrorMessage, decodeError(t, rec).Error)
		assert.NotContains(t, rec.Body.String(), "10.0.0.7")
	}
}

func TestStoreConstraintViolationIs400(t *testing.T) {
	storeErr := &model.StoreError{Op: "insert city", Err: &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23514",
		Message:        `new row for relation "city" violates check constraint "city_Population_check"`,
		TableName:      "city",
		ConstraintName: "city_Population_check",
	}}
	r, _ := newTestRouter(t, failingStore{err: storeErr})

	rec := do(r, http.MethodPost, "/cities",
		`{"name":"Testville","countryCode":"TST","district":"TestDistrict","population":1000}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "CITY_INVALID", body.Code)
	assert.Equal(t, "One or more values do not meet required conditions", body.Error)
	assert.NotContains(t, rec.Body.String(), "violates")
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodGet, "/countries/JPN", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Error)
}

func TestRequestIDHeader(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodGet, "/ping", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestSystemRoutes(t *testing.T) {
	r, _ := newTestRouter(t, repository.NewMemoryCityStore())

	rec := do(r, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	do(r, http.MethodGet, "/cities/Nowhere", "")

	rec = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `world_city_lookups_total{outcome="not_found"} 1`)
}
