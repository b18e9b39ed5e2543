package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/phrazzld/minimono-api/internal/api/shared"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/mediator"
	"github.com/phrazzld/minimono-api/internal/service"
)

// CreateLessonRequest is the body of POST /courses/{id}/lessons. Content is
// decoded by its discriminator.
type CreateLessonRequest struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

// CreateLesson handles POST /courses/{id}/lessons.
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var body CreateLessonRequest
	if err := shared.DecodeJSON(w, r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	content, err := h.decodeContent(body.Content)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.CreateLesson, service.Created](r.Context(), h.mediator, service.CreateLesson{
		CourseID: courseID,
		Name:     body.Name,
		Content:  content,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/lessons/"+res.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, res)
}

// ListLessons handles GET /courses/{id}/lessons.
func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	courseID, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.ListLessons, []service.LessonSummary](
		r.Context(), h.mediator, service.ListLessons{CourseID: courseID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if res == nil {
		res = []service.LessonSummary{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// GetLesson handles GET /lessons/{id}.
func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := mediator.Send[service.GetLesson, service.LessonDTO](r.Context(), h.mediator, service.GetLesson{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// ReplaceLessonContent handles PUT /lessons/{id}/content. The body is the
// content object itself.
func (h *Handler) ReplaceLessonContent(w http.ResponseWriter, r *http.Request) {
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
	content, err := h.decodeContent(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := mediator.Send[service.ReplaceLessonContent, service.NoContent](
		r.Context(), h.mediator, service.ReplaceLessonContent{LessonID: id, Content: content}); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RespondNoContent(w)
}

// decodeContent reads polymorphic content. An absent or null value yields
// nil and is left to request validation.
func (h *Handler) decodeContent(raw []byte) (domain.LessonContent, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	return h.content.Unmarshal(trimmed)
}
