package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&StoreError{Op: "find city by name", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store: find city by name: connection refused", err.Error())

	var storeErr *StoreError
	assert.True(t, errors.As(err, &storeErr))
}

func TestCityIsPersisted(t *testing.T) {
	assert.False(t, City{Name: "Testville"}.IsPersisted())
	assert.True(t, City{ID: 4080, Name: "Testville"}.IsPersisted())
}
