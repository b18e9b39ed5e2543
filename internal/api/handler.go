package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/minimono-api/internal/mediator"
	"github.com/phrazzld/minimono-api/internal/service"
)

// Handler serves the course and lesson endpoints.
type Handler struct {
	mediator       *mediator.Mediator
	content        *service.ContentConverter
	includeDetails bool
	logger         *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithErrorDetails adds redacted error text to error responses. Only meant
// for development.
func WithErrorDetails(include bool) Option {
	return func(h *Handler) { h.includeDetails = include }
}

// WithLogger sets the fallback logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates a Handler dispatching through m. content decodes
// polymorphic lesson content.
func NewHandler(m *mediator.Mediator, content *service.ContentConverter, opts ...Option) *Handler {
	h := &Handler{mediator: m, content: content, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With(slog.String("component", "api"))
	return h
}

// Routes mounts the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Post("/", h.CreateCourse)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCourse)
			r.Patch("/", h.UpdateCourse)
			r.Delete("/", h.DeleteCourse)
			r.Post("/publish", h.PublishCourse)
			r.Get("/lessons", h.ListLessons)
			r.Post("/lessons", h.CreateLesson)
		})
	})
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", h.GetLesson)
		r.Put("/content", h.ReplaceLessonContent)
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	HandleAPIError(w, r, err, h.includeDetails)
}
