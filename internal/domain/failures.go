package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a variant of the closed failure family.
type Kind int

// Failure kinds. The set is closed; boundary code switches over it exhaustively.
const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindConflict
	KindFormat
	KindConfiguration
	KindCancelled
)

// Kinds lists every failure kind.
func Kinds() []Kind {
	return []Kind{
		KindValidation,
		KindNotFound,
		KindForbidden,
		KindUnauthorized,
		KindConflict,
		KindFormat,
		KindConfiguration,
		KindCancelled,
	}
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindFormat:
		return "format"
	case KindConfiguration:
		return "configuration"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Failure is a typed, recognized failure. Only the types in this file
// implement it.
type Failure interface {
	error
	Kind() Kind
	failure()
}

// AsFailure finds the first Failure in err's chain.
func AsFailure(err error) (Failure, bool) {
	var f Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// FieldFailure is a single rule violation on a field path.
type FieldFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FailureSet groups failures by field. Fields keep first-appearance order and
// messages keep discovery order within a field.
type FailureSet struct {
	fields   []string
	messages map[string][]string
}

// NewFailureSet groups the given failures.
func NewFailureSet(failures ...FieldFailure) *FailureSet {
	s := &FailureSet{messages: make(map[string][]string)}
	for _, f := range failures {
		s.Add(f.Field, f.Message)
	}
	return s
}

// Add appends a message under field.
func (s *FailureSet) Add(field, message string) {
	if s.messages == nil {
		s.messages = make(map[string][]string)
	}
	if _, ok := s.messages[field]; !ok {
		s.fields = append(s.fields, field)
	}
	s.messages[field] = append(s.messages[field], message)
}

// Len returns the number of distinct fields with failures.
func (s *FailureSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns the failing field paths in first-appearance order.
func (s *FailureSet) Fields() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Messages returns the messages recorded for field.
func (s *FailureSet) Messages(field string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.messages[field]...)
}

// Map returns a copy of the set as a plain map.
func (s *FailureSet) Map() map[string][]string {
	out := make(map[string][]string, s.Len())
	for _, f := range s.Fields() {
		out[f] = s.Messages(f)
	}
	return out
}

// MarshalJSON writes the set as an object with fields in first-appearance order.
func (s *FailureSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range s.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(s.messages[field])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ValidationError reports one or more rule violations grouped by field.
type ValidationError struct {
	Failures *FailureSet
}

// NewValidationError creates a ValidationError with a single failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Failures: NewFailureSet(FieldFailure{Field: field, Message: message})}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, e.Failures.Len())
	for _, field := range e.Failures.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Failures.Messages(field), ", ")))
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
func (e *ValidationError) Kind() Kind    { return KindValidation }
func (e *ValidationError) failure()      {}

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q was not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
func (e *NotFoundError) Kind() Kind    { return KindNotFound }
func (e *NotFoundError) failure()      {}

// ForbiddenError reports an authorization refusal.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return ErrForbidden.Error()
	}
	return fmt.Sprintf("%s: %s", ErrForbidden.Error(), e.Reason)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }
func (e *ForbiddenError) Kind() Kind    { return KindForbidden }
func (e *ForbiddenError) failure()      {}

// UnauthorizedError reports a missing or invalid caller identity.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	if e.Reason == "" {
		return ErrUnauthorized.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnauthorized.Error(), e.Reason)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }
func (e *UnauthorizedError) Kind() Kind    { return KindUnauthorized }
func (e *UnauthorizedError) failure()      {}

// ConflictError reports that an entity cannot be changed as requested because
// its current type or state differs from what the request expects.
type ConflictError struct {
	Entity   string
	ID       string
	Expected string
	Actual   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unable to replace %s '%s' as it is of type '%s', not '%s'",
		e.Entity, e.ID, e.Actual, e.Expected)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
func (e *ConflictError) Kind() Kind    { return KindConflict }
func (e *ConflictError) failure()      {}

// FormatError reports a structurally unreadable payload.
type FormatError struct {
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

func (e *FormatError) Kind() Kind { return KindFormat }
func (e *FormatError) failure()   {}

// ConfigurationError reports a wiring mistake: a missing handler, mapping or
// discriminator binding, or an engine error that cannot be interpreted.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfiguration}
	}
	return []error{ErrConfiguration, e.Err}
}

func (e *ConfigurationError) Kind() Kind { return KindConfiguration }
func (e *ConfigurationError) failure()   {}

// CancelledError reports that the caller's context ended mid-request.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrCancelled.Error(), e.Err)
	}
	return ErrCancelled.Error()
}

func (e *CancelledError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCancelled}
	}
	return []error{ErrCancelled, e.Err}
}

func (e *CancelledError) Kind() Kind { return KindCancelled }
func (e *CancelledError) failure()   {}
