// Package domain contains the core business entities, value objects, and
// typed failures of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// Failures form a closed family: ValidationError, NotFoundError,
// ForbiddenError, UnauthorizedError, ConflictError, FormatError,
// ConfigurationError and CancelledError. Code at the HTTP boundary switches
// over Kind to translate them.
package domain
