package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/minimono-api/internal/api/shared"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/redact"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// ErrorResponseFor translates err into the response a client sees. Only
// typed failures produce specific statuses; anything else is a 500 with a
// generic message. With includeDetails the redacted error text is added.
func ErrorResponseFor(err error, includeDetails bool) shared.ErrorResponse {
	resp := shared.ErrorResponse{Code: http.StatusInternalServerError, Error: unexpectedErrorMessage}

	if f, ok := domain.AsFailure(err); ok {
		switch f.Kind() {
		case domain.KindValidation:
			resp.Code, resp.Error = http.StatusBadRequest, "Validation failed"
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				resp.Errors = verr.Failures.Map()
			}
		case domain.KindNotFound:
			resp.Code, resp.Error = http.StatusNotFound, f.Error()
		case domain.KindForbidden:
			resp.Code, resp.Error = http.StatusForbidden, "Forbidden"
		case domain.KindUnauthorized:
			resp.Code, resp.Error = http.StatusUnauthorized, "Unauthorized"
		case domain.KindConflict:
			resp.Code, resp.Error = http.StatusConflict, f.Error()
		case domain.KindFormat:
			resp.Code, resp.Error = http.StatusBadRequest, "Malformed request"
			var ferr *domain.FormatError
			if errors.As(err, &ferr) && ferr.Message != "" {
				resp.Error = ferr.Message
			}
		case domain.KindConfiguration:
			resp.Code, resp.Error = http.StatusInternalServerError, unexpectedErrorMessage
		case domain.KindCancelled:
			resp.Code, resp.Error = http.StatusBadRequest, "Request cancelled"
		}
	}

	if includeDetails && err != nil {
		resp.Detail = redact.Error(err)
	}
	return resp
}

// HandleAPIError writes the response for err and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, includeDetails bool) {
	shared.RespondWithErrorAndLog(w, r, ErrorResponseFor(err, includeDetails), err)
}
