// Package patch applies JSON Patch (RFC 6902) documents to editable models and
// validates the outcome before anything is persisted.
package patch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/validation"
)

// MediaType is the content type of patch documents.
const MediaType = "application/json-patch+json"

var supportedOps = map[string]bool{
	"add":     true,
	"remove":  true,
	"replace": true,
	"move":    true,
	"copy":    true,
	"test":    true,
}

// Document is a decoded, ordered list of patch operations.
type Document struct {
	ops jsonpatch.Patch
}

// Decode parses raw as a patch document. Malformed JSON yields a
// *domain.FormatError; operations with an unsupported op yield a
// *domain.ValidationError keyed "Operation <op>".
func Decode(raw []byte) (Document, error) {
	ops, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return Document{}, &domain.FormatError{Message: "malformed JSON Patch document", Err: err}
	}

	set := domain.NewFailureSet()
	for _, op := range ops {
		kind := op.Kind()
		if !supportedOps[kind] {
			set.Add(operationField(kind), fmt.Sprintf("%q is not a supported operation", kind))
		}
	}
	if set.Len() > 0 {
		return Document{}, &domain.ValidationError{Failures: set}
	}
	return Document{ops: ops}, nil
}

// Len returns the number of operations.
func (d Document) Len() int { return len(d.ops) }

// Apply projects entity to M, applies every operation of doc in order and
// validates the result with validators. Either all operations apply and the
// patched model is returned, or none of them take effect. Apply never writes
// to storage.
func Apply[E, M any](
	ctx context.Context,
	doc Document,
	entity E,
	project func(E) (M, error),
	validators *validation.Registry,
) (M, error) {
	var zero M

	model, err := project(entity)
	if err != nil {
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		return zero, &domain.CancelledError{Err: err}
	}

	current, err := json.Marshal(model)
	if err != nil {
		return zero, &domain.ConfigurationError{Message: fmt.Sprintf("cannot encode %T for patching", model), Err: err}
	}

	for _, op := range doc.ops {
		next, err := jsonpatch.Patch{op}.Apply(current)
		if err != nil {
			return zero, operationError(op, err)
		}
		// Every intermediate document must still fit the model.
		var probe M
		if err := decodeStrict(next, &probe); err != nil {
			return zero, shapeError(op, err)
		}
		current = next
	}

	var patched M
	if err := decodeStrict(current, &patched); err != nil {
		return zero, &domain.ConfigurationError{Message: fmt.Sprintf("cannot decode patched %T", patched), Err: err}
	}

	if err := validators.Validate(ctx, patched); err != nil {
		return zero, err
	}
	return patched, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func operationField(kind string) string {
	return "Operation " + kind
}

// operationError turns a patch engine error into a failure keyed by the
// operation kind. Errors the engine does not document are wiring problems.
func operationError(op jsonpatch.Operation, err error) error {
	kind := op.Kind()
	path, _ := op.Path()

	var reason string
	switch {
	case errors.Is(err, jsonpatch.ErrTestFailed):
		reason = fmt.Sprintf("the value at %q does not match the expected value", path)
	case errors.Is(err, jsonpatch.ErrInvalidIndex):
		reason = fmt.Sprintf("the array index in %q is out of range", path)
	case errors.Is(err, jsonpatch.ErrMissing):
		reason = fmt.Sprintf("the target location %q does not exist", path)
	case errors.Is(err, jsonpatch.ErrInvalid), errors.Is(err, jsonpatch.ErrUnknownType):
		reason = fmt.Sprintf("the operation cannot be applied at %q", path)
	default:
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("unrecognized error from %s operation", kind),
			Err:     err,
		}
	}
	return domain.NewValidationError(operationField(kind), reason)
}

// shapeError reports an operation whose result no longer decodes into the
// editable model.
func shapeError(op jsonpatch.Operation, err error) error {
	kind := op.Kind()
	path, _ := op.Path()

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return domain.NewValidationError(operationField(kind),
			fmt.Sprintf("the value at %q has the wrong type, expected %s", path, typeErr.Type))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return domain.NewValidationError(operationField(kind),
			fmt.Sprintf("the target location %q is not an editable field", path))
	default:
		return &domain.ConfigurationError{
			Message: fmt.Sprintf("cannot decode result of %s operation", kind),
			Err:     err,
		}
	}
}
