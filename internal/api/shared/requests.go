package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/phrazzld/minimono-api/internal/domain"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// ReadBody returns the request body, limited to MaxBodyBytes.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &domain.FormatError{Message: "request body is too large"}
		}
		return nil, &domain.FormatError{Message: "unable to read request body", Err: err}
	}
	return body, nil
}

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected. Every failure is a *domain.FormatError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.FormatError{Message: "request body is empty"}
		}
		return &domain.FormatError{Message: "invalid request format", Err: err}
	}
	if dec.More() {
		return &domain.FormatError{Message: "request body must contain a single JSON value"}
	}
	return nil
}
