package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/events"
	"github.com/phrazzld/minimono-api/internal/mapping"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
)

const lessonEntity = "lesson"

// CreateLesson adds a draft lesson to an existing course and raises
// lesson.created.
func (h *Handlers) CreateLesson(ctx context.Context, req CreateLesson) (Created, error) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	// Deleted courses keep their row, so the foreign key alone would accept them.
	if _, err := h.courses.GetByID(ctx, req.CourseID); err != nil {
		return Created{}, wrapError("create_lesson", "failed to retrieve course", err, courseEntity, req.CourseID.String())
	}

	lesson, err := domain.NewLesson(req.CourseID, req.Name, req.Content)
	if err != nil {
		return Created{}, err
	}

	if err := h.lessons.Create(ctx, lesson); err != nil {
		return Created{}, wrapError("create_lesson", "failed to save lesson", err, courseEntity, req.CourseID.String())
	}

	if err := events.Raise(ctx, domain.EventLessonCreated, domain.LessonCreated{
		LessonID:    lesson.ID,
		CourseID:    lesson.CourseID,
		ContentType: lesson.Content.Discriminator(),
	}); err != nil {
		return Created{}, wrapError("create_lesson", "failed to raise event", err, lessonEntity, lesson.ID.String())
	}

	log.Info("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("course_id", lesson.CourseID.String()),
		slog.String("content_type", string(lesson.Content.Discriminator())))
	return Created{ID: lesson.ID}, nil
}

// GetLesson reads one lesson.
func (h *Handlers) GetLesson(ctx context.Context, req GetLesson) (LessonDTO, error) {
	lesson, err := h.lessons.GetByID(ctx, req.ID)
	if err != nil {
		return LessonDTO{}, wrapError("get_lesson", "failed to retrieve lesson", err, lessonEntity, req.ID.String())
	}
	return mapping.Map[*domain.Lesson, LessonDTO](h.mappings, lesson)
}

// ListLessons reads the lessons of a course in creation order.
func (h *Handlers) ListLessons(ctx context.Context, req ListLessons) ([]LessonSummary, error) {
	if _, err := h.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, wrapError("list_lessons", "failed to retrieve course", err, courseEntity, req.CourseID.String())
	}
	lessons, err := h.lessons.ListByCourse(ctx, req.CourseID)
	if err != nil {
		return nil, wrapError("list_lessons", "failed to list lessons", err, courseEntity, req.CourseID.String())
	}
	return mapping.MapSlice[*domain.Lesson, LessonSummary](h.mappings, lessons)
}

// ReplaceLessonContent swaps the content of a lesson. The new content must
// be of the same type as the stored content.
func (h *Handlers) ReplaceLessonContent(ctx context.Context, req ReplaceLessonContent) (NoContent, error) {
	lesson, err := h.lessons.GetByID(ctx, req.LessonID)
	if err != nil {
		return NoContent{}, wrapError("replace_lesson_content", "failed to retrieve lesson", err, lessonEntity, req.LessonID.String())
	}
	if err := lesson.ReplaceContent(req.Content); err != nil {
		return NoContent{}, err
	}
	if err := h.lessons.UpdateContent(ctx, lesson); err != nil {
		return NoContent{}, wrapError("replace_lesson_content", "failed to save lesson", err, lessonEntity, req.LessonID.String())
	}
	return NoContent{}, nil
}
