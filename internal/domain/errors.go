package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request fails validation.
	// ValidationError unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidStatus is returned when a status value is not a known member.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUnauthorized is returned when no caller identity is present.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when the caller may not perform an operation.
	ErrForbidden = errors.New("forbidden operation")

	// ErrConflict is returned when an operation conflicts with current state.
	ErrConflict = errors.New("conflict")

	// ErrFormat is returned when a payload is structurally unreadable.
	ErrFormat = errors.New("invalid format")

	// ErrConfiguration is returned when the pipeline is wired incorrectly.
	ErrConfiguration = errors.New("configuration error")

	// ErrCancelled is returned when the caller abandoned the request.
	ErrCancelled = errors.New("request cancelled")
)
