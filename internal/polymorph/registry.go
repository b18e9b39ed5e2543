// Package polymorph reads and writes families of JSON objects whose concrete
// type is named by a discriminator property.
//
// The discriminator must be the first property of the object. Writers in this
// codebase guarantee that by embedding the discriminator in a base struct that
// is the first field of every concrete type.
package polymorph

import (
	"fmt"
	"strings"

	"github.com/phrazzld/minimono-api/internal/domain"
)

// Discriminated is implemented by every member of a polymorphic family.
type Discriminated[D ~string] interface {
	Discriminator() D
}

// Registry binds the members of a discriminator enum to constructors of the
// concrete types they name. It is filled once at startup.
type Registry[D ~string, B Discriminated[D]] struct {
	property string
	members  []D
	bindings map[D]func() B
}

// NewRegistry creates a Registry for the discriminator property and the
// closed set of enum members.
func NewRegistry[D ~string, B Discriminated[D]](property string, members ...D) *Registry[D, B] {
	return &Registry[D, B]{
		property: property,
		members:  append([]D(nil), members...),
		bindings: make(map[D]func() B, len(members)),
	}
}

// Property returns the discriminator property name.
func (r *Registry[D, B]) Property() string { return r.property }

// Members returns the enum members in declaration order.
func (r *Registry[D, B]) Members() []D { return append([]D(nil), r.members...) }

// Bind associates tag with a constructor returning a fresh concrete value,
// usually a pointer to a zero struct.
func (r *Registry[D, B]) Bind(tag D, newFn func() B) error {
	if !r.isMember(tag) {
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("%q is not a member of the %q discriminator", tag, r.property),
		}
	}
	if _, dup := r.bindings[tag]; dup {
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("discriminator value %q is already bound", tag),
		}
	}
	if newFn == nil {
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("nil constructor for discriminator value %q", tag),
		}
	}
	r.bindings[tag] = newFn
	return nil
}

// MustBind is Bind for static startup wiring.
func (r *Registry[D, B]) MustBind(tag D, newFn func() B) *Registry[D, B] {
	if err := r.Bind(tag, newFn); err != nil {
		// ALLOW-PANIC: programmer error in startup wiring
		panic(err)
	}
	return r
}

// Verify reports every enum member without a bound type.
func (r *Registry[D, B]) Verify() error {
	var missing []string
	for _, m := range r.members {
		if _, ok := r.bindings[m]; !ok {
			missing = append(missing, string(m))
		}
	}
	if len(missing) > 0 {
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("discriminator %q has unbound values: %s",
				r.property, strings.Join(missing, ", ")),
		}
	}
	return nil
}

// Lookup returns the constructor bound to tag.
func (r *Registry[D, B]) Lookup(tag D) (func() B, bool) {
	fn, ok := r.bindings[tag]
	return fn, ok
}

// parse maps raw to an enum member. Enum values match exactly.
func (r *Registry[D, B]) parse(raw string) (D, bool) {
	for _, m := range r.members {
		if string(m) == raw {
			return m, true
		}
	}
	var zero D
	return zero, false
}

func (r *Registry[D, B]) isMember(tag D) bool {
	_, ok := r.parse(string(tag))
	return ok
}
