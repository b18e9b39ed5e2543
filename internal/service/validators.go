package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/validation"
)

// RegisterValidators adds the rule validators of every request and of the
// editable models to r.
func RegisterValidators(r *validation.Registry) {
	validation.Register[CreateCourse](r, validation.NewStruct[CreateCourse]())
	validation.Register[CreateCourse](r, validation.Func[CreateCourse](blankTitle))

	validation.Register[ListCourses](r, validation.NewStruct[ListCourses]())
	validation.Register[ListCourses](r, validation.Func[ListCourses](pageSizeInRange))

	validation.Register[UpdateCourse](r, validation.Func[UpdateCourse](patchPresent))
	validation.Register[UpdateCourseModel](r, validation.NewStruct[UpdateCourseModel]())
	validation.Register[UpdateCourseModel](r, validation.Func[UpdateCourseModel](blankModelTitle))

	validation.Register[CreateLesson](r, validation.NewStruct[CreateLesson]())
	validation.Register[CreateLesson](r, validation.Func[CreateLesson](func(ctx context.Context, req CreateLesson) ([]domain.FieldFailure, error) {
		failures := requiredID("courseId", req.CourseID)
		content, err := contentFailures(req.Content)
		return append(failures, content...), err
	}))

	validation.Register[ReplaceLessonContent](r, validation.Func[ReplaceLessonContent](func(ctx context.Context, req ReplaceLessonContent) ([]domain.FieldFailure, error) {
		failures := requiredID("lessonId", req.LessonID)
		content, err := contentFailures(req.Content)
		return append(failures, content...), err
	}))
}

// blankTitle rejects titles made of whitespace only; empty titles are already
// reported by the struct rules.
func blankTitle(_ context.Context, req CreateCourse) ([]domain.FieldFailure, error) {
	if req.Title != "" && strings.TrimSpace(req.Title) == "" {
		return []domain.FieldFailure{validation.Failure("title", "must not be empty")}, nil
	}
	return nil, nil
}

func blankModelTitle(_ context.Context, m UpdateCourseModel) ([]domain.FieldFailure, error) {
	if m.Title != "" && strings.TrimSpace(m.Title) == "" {
		return []domain.FieldFailure{validation.Failure("title", "must not be empty")}, nil
	}
	return nil, nil
}

func pageSizeInRange(_ context.Context, req ListCourses) ([]domain.FieldFailure, error) {
	if req.PageSize < 1 || req.PageSize > MaxPageSize {
		return []domain.FieldFailure{
			validation.Failure("pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize)),
		}, nil
	}
	return nil, nil
}

func patchPresent(_ context.Context, req UpdateCourse) ([]domain.FieldFailure, error) {
	if len(req.Patch) == 0 {
		return []domain.FieldFailure{validation.Failure("patch", "must not be empty")}, nil
	}
	return nil, nil
}

func requiredID(field string, id uuid.UUID) []domain.FieldFailure {
	if id == uuid.Nil {
		return []domain.FieldFailure{validation.Failure(field, "must not be empty")}
	}
	return nil
}

// contentFailures applies the struct rules of the concrete content type,
// reporting paths under "content".
func contentFailures(content domain.LessonContent) ([]domain.FieldFailure, error) {
	if content == nil {
		return []domain.FieldFailure{validation.Failure("content", "must not be empty")}, nil
	}
	return validation.StructFailures("content", content)
}
