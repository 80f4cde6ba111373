package services

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers unknown meal ids and unknown student emails.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate maps to a unique-key violation (409 at the API).
	ErrDuplicate = errors.New("duplicate entry")
)

// ValidationError carries every individual violation so handlers can
// return them in the response's details field.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Details, "; ")
}

func newValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}
