package api

import (
	"mime"
	"net/http"
	"strings"

	"github.com/phrazzld/minimono-api/internal/api/shared"
	"github.com/phrazzld/minimono-api/internal/mediator"
	"github.com/phrazzld/minimono-api/internal/patch"
	"github.com/phrazzld/minimono-api/internal/service"
)

// CreateCourse handles POST /courses.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCourse
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.CreateCourse, service.Created](r.Context(), h.mediator, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", strings.TrimSuffix(r.URL.Path, "/")+"/"+res.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, res)
}

// GetCourse handles GET /courses/{id}.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.GetCourse, service.CourseDTO](r.Context(), h.mediator, service.GetCourse{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// ListCourses handles GET /courses?pageNumber=&pageSize=.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	pageNumber, err := getQueryInt(r, "pageNumber", service.DefaultPageNumber)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	pageSize, err := getQueryInt(r, "pageSize", service.DefaultPageSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.ListCourses, service.PaginatedList[service.CourseSummary]](
		r.Context(), h.mediator, service.ListCourses{PageNumber: pageNumber, PageSize: pageSize})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// UpdateCourse handles PATCH /courses/{id} with a JSON Patch document.
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != patch.MediaType {
		shared.RespondWithError(w, r, http.StatusUnsupportedMediaType,
			"Content-Type must be "+patch.MediaType)
		return
	}

	id, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	body, err := shared.ReadBody(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := mediator.Send[service.UpdateCourse, service.NoContent](
		r.Context(), h.mediator, service.UpdateCourse{ID: id, Patch: body}); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// DeleteCourse handles DELETE /courses/{id}.
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := mediator.Send[service.DeleteCourse, service.NoContent](
		r.Context(), h.mediator, service.DeleteCourse{ID: id}); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// PublishCourse handles POST /courses/{id}/publish.
func (h *Handler) PublishCourse(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := mediator.Send[service.PublishCourse, service.NoContent](
		r.Context(), h.mediator, service.PublishCourse{ID: id}); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}
