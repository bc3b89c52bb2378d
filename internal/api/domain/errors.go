package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no record has the requested identifier
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique field would be duplicated
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned for malformed or missing input
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned for missing, invalid or expired credentials
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries the client-facing message and any missing fields
type ValidationError struct {
	Message       string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.MissingFields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NewMissingFieldsError creates a validation error naming the missing fields
func NewMissingFieldsError(fields []string) error {
	return &ValidationError{Message: "Missing required fields", MissingFields: fields}
}
