// Package mapping holds the explicit table of projections between entities and
// the models exposed to clients. Pairs are registered at startup.
package mapping

import (
	"fmt"
	"reflect"

	"github.com/phrazzld/minimono-api/internal/domain"
)

type pair struct {
	src reflect.Type
	dst reflect.Type
}

// Registry stores one projection function per (source, destination) pair.
type Registry struct {
	funcs map[pair]any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[pair]any)}
}

// Register adds the projection from S to D.
func Register[S, D any](r *Registry, fn func(S) D) error {
	key := pair{src: reflect.TypeFor[S](), dst: reflect.TypeFor[D]()}
	if fn == nil {
		return &domain.ConfigurationError{Message: fmt.Sprintf("nil mapping from %s to %s", key.src, key.dst)}
	}
	if _, dup := r.funcs[key]; dup {
		return &domain.ConfigurationError{Message: fmt.Sprintf("mapping from %s to %s is already registered", key.src, key.dst)}
	}
	r.funcs[key] = fn
	return nil
}

// Has reports whether a projection from S to D is registered.
func Has[S, D any](r *Registry) bool {
	_, ok := r.funcs[pair{src: reflect.TypeFor[S](), dst: reflect.TypeFor[D]()}]
	return ok
}

// Map projects src to D.
func Map[S, D any](r *Registry, src S) (D, error) {
	var zero D
	key := pair{src: reflect.TypeFor[S](), dst: reflect.TypeFor[D]()}
	fn, ok := r.funcs[key]
	if !ok {
		return zero, &domain.ConfigurationError{Message: fmt.Sprintf("no mapping registered from %s to %s", key.src, key.dst)}
	}
	return fn.(func(S) D)(src), nil
}

// MapSlice projects every element of src.
func MapSlice[S, D any](r *Registry, src []S) ([]D, error) {
	out := make([]D, 0, len(src))
	for _, s := range src {
		d, err := Map[S, D](r, s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Projector returns a function bound to r that projects S to D.
func Projector[S, D any](r *Registry) func(S) (D, error) {
	return func(s S) (D, error) { return Map[S, D](r, s) }
}
