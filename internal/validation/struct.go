package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/minimono-api/internal/domain"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// Engine returns the shared struct-tag validator. Field names in reported
// paths come from json tags.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return engine
}

// Struct is a Validator driven by `validate` struct tags.
type Struct[T any] struct {
	prefix string
}

// NewStruct returns a struct-tag Validator for T.
func NewStruct[T any]() Struct[T] {
	return Struct[T]{}
}

// NewNestedStruct returns a struct-tag Validator whose failure paths are
// prefixed, for validating a value that is part of a larger request.
func NewNestedStruct[T any](prefix string) Struct[T] {
	return Struct[T]{prefix: prefix}
}

// Validate implements Validator.
func (s Struct[T]) Validate(ctx context.Context, value T) ([]domain.FieldFailure, error) {
	return StructFailures(s.prefix, value)
}

// StructFailures validates v with the shared engine and converts tag
// violations into field failures. Values that are not structs yield nothing.
func StructFailures(prefix string, v any) ([]domain.FieldFailure, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil
	}

	err := Engine().Struct(v)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	failures := make([]domain.FieldFailure, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		failures = append(failures, Failure(fieldPath(prefix, fe.Namespace()), tagMessage(fe)))
	}
	return failures, nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(prefix, namespace string) string {
	path := namespace
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		path = namespace[i+1:]
	}
	if prefix == "" {
		return path
	}
	return prefix + "." + path
}

// tagMessage maps validation tags to user-facing messages.
func tagMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "url", "http_url":
		return "must be an absolute URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
