package service

import (
	"log/slog"
	"time"

	"github.com/phrazzld/minimono-api/internal/mapping"
	"github.com/phrazzld/minimono-api/internal/mediator"
	"github.com/phrazzld/minimono-api/internal/store"
	"github.com/phrazzld/minimono-api/internal/validation"
)

// Handlers implements every request of the API.
type Handlers struct {
	db         store.Transactor
	courses    store.CourseStore
	lessons    store.LessonStore
	mappings   *mapping.Registry
	validators *validation.Registry
	now        func() time.Time
	logger     *slog.Logger
}

// Deps are the collaborators of Handlers.
type Deps struct {
	DB         store.Transactor
	Courses    store.CourseStore
	Lessons    store.LessonStore
	Mappings   *mapping.Registry
	Validators *validation.Registry
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// NewHandlers creates Handlers. It returns an error if a required
// dependency is missing.
func NewHandlers(deps Deps) (*Handlers, error) {
	switch {
	case deps.DB == nil:
		return nil, &ServiceError{Operation: "create_handlers", Message: "db cannot be nil"}
	case deps.Courses == nil:
		return nil, &ServiceError{Operation: "create_handlers", Message: "course store cannot be nil"}
	case deps.Lessons == nil:
		return nil, &ServiceError{Operation: "create_handlers", Message: "lesson store cannot be nil"}
	case deps.Mappings == nil:
		return nil, &ServiceError{Operation: "create_handlers", Message: "mapping registry cannot be nil"}
	case deps.Validators == nil:
		return nil, &ServiceError{Operation: "create_handlers", Message: "validator registry cannot be nil"}
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	l := deps.Logger
	if l == nil {
		l = slog.Default()
	}

	return &Handlers{
		db:         deps.DB,
		courses:    deps.Courses,
		lessons:    deps.Lessons,
		mappings:   deps.Mappings,
		validators: deps.Validators,
		now:        now,
		logger:     l.With(slog.String("component", "handlers")),
	}, nil
}

// Register pairs every request type with its handler on m.
func Register(m *mediator.Mediator, h *Handlers) {
	mediator.RegisterFunc(m, h.CreateCourse)
	mediator.RegisterFunc(m, h.GetCourse)
	mediator.RegisterFunc(m, h.ListCourses)
	mediator.RegisterFunc(m, h.UpdateCourse)
	mediator.RegisterFunc(m, h.DeleteCourse)
	mediator.RegisterFunc(m, h.PublishCourse)

	mediator.RegisterFunc(m, h.CreateLesson)
	mediator.RegisterFunc(m, h.GetLesson)
	mediator.RegisterFunc(m, h.ListLessons)
	mediator.RegisterFunc(m, h.ReplaceLessonContent)
}
