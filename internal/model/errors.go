package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a point query matches no row.
	ErrNotFound = errors.New("not found")

	// ErrDivisionUndefined is returned when a ratio is requested against
	// a country whose population is zero.
	ErrDivisionUndefined = errors.New("population ratio undefined: country population is zero")
)

// StoreError wraps an infrastructure failure of the backing store.
//
// Its message is meant for logs only; the HTTP layer never shows it to
// clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError reports a draft that was rejected before reaching the store.
// Err is usually a validator.ValidationErrors.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
