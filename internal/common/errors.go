// Package common defines shared constants, sentinel errors and small helpers
// used across Blood Connect packages. Callers should use errors.Is to match
// the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorConflict = errors.New("concurrent modification")

	// Service-level errors.
	ErrorValidation    = errors.New("validation error")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorUnavailable   = errors.New("service unavailable")
)
