package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)))
}

func TestConstructors(t *testing.T) {
	code := "CITY_NOT_FOUND"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"not found custom code", NewNotFoundError("missing", false, &code), http.StatusNotFound, code},
		{"unprocessable", NewUnprocessableEntityError("zero", false, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestInternalServerErrorIsGeneric(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "internal server error", err.Error())
}

func TestHTTPErrorMatchesByType(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("missing", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestResponseCarriesErrorField(t *testing.T) {
	body, err := json.Marshal(NewNotFoundError("No such city Name = Nowhere", true, nil).Response())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "No such city Name = Nowhere", decoded["error"])
	assert.Equal(t, "NOT_FOUND", decoded["code"])
	assert.EqualValues(t, 404, decoded["status"])
	assert.NotContains(t, decoded, "errors")
}
