package polymorph

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/tidwall/gjson"
)

// Option customizes a Converter.
type Option func(*options)

type options struct {
	caseInsensitive bool
}

// CaseInsensitive makes the discriminator property name match regardless of
// case. Enum values are always matched exactly.
func CaseInsensitive() Option {
	return func(o *options) { o.caseInsensitive = true }
}

// Converter reads and writes members of a polymorphic family.
type Converter[D ~string, B Discriminated[D]] struct {
	registry        *Registry[D, B]
	caseInsensitive bool
}

// NewConverter creates a Converter over registry.
func NewConverter[D ~string, B Discriminated[D]](registry *Registry[D, B], opts ...Option) *Converter[D, B] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Converter[D, B]{registry: registry, caseInsensitive: o.caseInsensitive}
}

// Marshal writes the runtime type of v. The discriminator is written as an
// ordinary property of the concrete type.
func (c *Converter[D, B]) Marshal(v B) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return nil, &domain.ConfigurationError{Message: "cannot serialize a nil polymorphic value"}
	}
	tag := v.Discriminator()
	if _, ok := c.registry.Lookup(tag); !ok {
		return nil, &domain.ConfigurationError{
			Message: fmt.Sprintf("type %T with discriminator value %q is not registered", v, tag),
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &domain.ConfigurationError{Message: fmt.Sprintf("failed to serialize %T", v), Err: err}
	}
	return data, nil
}

// Unmarshal reads a JSON object whose first property is the discriminator and
// decodes the whole object into the bound concrete type.
func (c *Converter[D, B]) Unmarshal(data []byte) (B, error) {
	var zero B
	property := c.registry.Property()

	if !gjson.ValidBytes(data) {
		return zero, &domain.FormatError{Message: "payload is not valid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return zero, &domain.FormatError{Message: "payload must be a JSON object"}
	}

	var key, value gjson.Result
	found := false
	root.ForEach(func(k, v gjson.Result) bool {
		key, value, found = k, v, true
		return false
	})
	if !found || !c.matchesProperty(key.String()) {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("unable to locate type discriminator token, expecting %q as the first property", property),
		}
	}
	if value.Type != gjson.String {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("discriminator %q must be a string", property),
		}
	}

	tag, ok := c.registry.parse(value.Str)
	if !ok {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("unrecognized value %q for discriminator %q", value.Str, property),
		}
	}
	return c.decode(tag, data)
}

// UnmarshalAs decodes data into the concrete type bound to tag without
// requiring the discriminator to be the first property. It is meant for
// stores that keep the tag in its own column and whose JSON storage does
// not preserve key order.
func (c *Converter[D, B]) UnmarshalAs(tag D, data []byte) (B, error) {
	var zero B
	if !c.registry.isMember(tag) {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("unrecognized value %q for discriminator %q", tag, c.registry.Property()),
		}
	}
	if !gjson.ValidBytes(data) {
		return zero, &domain.FormatError{Message: "payload is not valid JSON"}
	}
	return c.decode(tag, data)
}

// decode fills a fresh value bound to tag. A later property overriding the
// discriminator is rejected, so the concrete type always agrees with the
// value it reports.
func (c *Converter[D, B]) decode(tag D, data []byte) (B, error) {
	var zero B
	newFn, ok := c.registry.Lookup(tag)
	if !ok {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("unable to determine model type for discriminator value of %q", tag),
		}
	}

	out := newFn()
	if err := json.Unmarshal(data, out); err != nil {
		return zero, &domain.FormatError{Message: fmt.Sprintf("invalid %s payload", tag), Err: err}
	}
	if got := out.Discriminator(); got != tag {
		return zero, &domain.FormatError{
			Message: fmt.Sprintf("discriminator %q is %q but the payload also sets it to %q",
				c.registry.Property(), tag, got),
		}
	}
	return out, nil
}

func (c *Converter[D, B]) matchesProperty(key string) bool {
	if c.caseInsensitive {
		return strings.EqualFold(key, c.registry.Property())
	}
	return key == c.registry.Property()
}
