// Package validation runs the rule validators registered for a value type and
// merges their findings into a single domain.ValidationError.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/phrazzld/minimono-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Validator checks a value of type T and reports every failure it finds.
// A returned error means the validator itself could not run; rule violations
// are reported through the failure slice.
type Validator[T any] interface {
	Validate(ctx context.Context, value T) ([]domain.FieldFailure, error)
}

// Func adapts a function to a Validator.
type Func[T any] func(ctx context.Context, value T) ([]domain.FieldFailure, error)

// Validate implements Validator.
func (f Func[T]) Validate(ctx context.Context, value T) ([]domain.FieldFailure, error) {
	return f(ctx, value)
}

type erased func(ctx context.Context, value any) ([]domain.FieldFailure, error)

// Registry maps value types to their validators. It is filled at startup and
// only read afterwards.
type Registry struct {
	validators map[reflect.Type][]erased
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[reflect.Type][]erased)}
}

// Register adds v to the validators run for values of type T.
// Validators run concurrently; their failures are merged in registration order.
func Register[T any](r *Registry, v Validator[T]) {
	t := reflect.TypeFor[T]()
	r.validators[t] = append(r.validators[t], func(ctx context.Context, value any) ([]domain.FieldFailure, error) {
		return v.Validate(ctx, value.(T))
	})
}

// Count returns how many validators are registered for value's type.
func (r *Registry) Count(value any) int {
	if r == nil || value == nil {
		return 0
	}
	return len(r.validators[reflect.TypeOf(value)])
}

// Validate runs every validator registered for value's dynamic type
// concurrently and waits for all of them. It returns nil when no validator
// reports a failure, a *domain.ValidationError grouping all failures by field,
// or a *domain.CancelledError if ctx ends first. Partial results are never
// returned.
func (r *Registry) Validate(ctx context.Context, value any) error {
	if r == nil || value == nil {
		return nil
	}
	validators := r.validators[reflect.TypeOf(value)]
	if len(validators) == 0 {
		return nil
	}

	results := make([][]domain.FieldFailure, len(validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			failures, err := v(gctx, value)
			if err != nil {
				return err
			}
			results[i] = failures
			return nil
		})
	}

	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &domain.CancelledError{Err: ctxErr}
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &domain.CancelledError{Err: err}
		}
		return fmt.Errorf("validator for %s failed: %w", reflect.TypeOf(value), err)
	}

	set := domain.NewFailureSet()
	for _, failures := range results {
		for _, f := range failures {
			set.Add(f.Field, f.Message)
		}
	}
	if set.Len() == 0 {
		return nil
	}
	return &domain.ValidationError{Failures: set}
}

// Failure is shorthand for a single FieldFailure.
func Failure(field, message string) domain.FieldFailure {
	return domain.FieldFailure{Field: field, Message: message}
}
