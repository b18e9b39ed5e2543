package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/store"
)

// ServiceError wraps an unexpected failure of a handler with the operation
// that was running. It is deliberately not a domain.Failure: it surfaces as an
// internal error.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "create_course")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapError translates err for the caller. Typed failures pass through
// unchanged, store not-found errors become a domain.NotFoundError for entity
// and id, and everything else is wrapped in a ServiceError.
func wrapError(operation, message string, err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsFailure(err); ok {
		return err
	}
	if errors.Is(err, store.ErrNotFound) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
