// Package common defines shared constants and sentinel errors used across
// client and server layers of taskpad. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors (empty title, empty patch).
	ErrorValidation = errors.New("validation error")

	// ErrorStore marks any failure reported by the record or attachment store.
	ErrorStore = errors.New("store error")

	// ErrUnavailable is returned when the record store cannot be reached.
	ErrUnavailable = errors.New("server unavailable")
)
