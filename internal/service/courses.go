package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/events"
	"github.com/phrazzld/minimono-api/internal/mapping"
	"github.com/phrazzld/minimono-api/internal/patch"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
	"github.com/phrazzld/minimono-api/internal/service/auth"
	"github.com/phrazzld/minimono-api/internal/store"
)

const courseEntity = "course"

// CreateCourse stores a new draft course owned by the caller and raises
// course.created.
func (h *Handlers) CreateCourse(ctx context.Context, req CreateCourse) (Created, error) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return Created{}, &domain.UnauthorizedError{Reason: "a caller is required to create a course"}
	}

	course, err := domain.NewCourse(caller.ID, req.Title)
	if err != nil {
		return Created{}, err
	}
	course.Description = req.Description
	course.ExternalID = req.ExternalID
	course.Thumbnail = req.Thumbnail
	if err := course.Validate(); err != nil {
		return Created{}, err
	}

	if err := h.courses.Create(ctx, course); err != nil {
		return Created{}, wrapError("create_course", "failed to save course", err, courseEntity, course.ID.String())
	}

	if err := events.Raise(ctx, domain.EventCourseCreated, domain.CourseCreated{
		CourseID: course.ID,
		OwnerID:  course.OwnerID,
		Title:    course.Title,
	}); err != nil {
		return Created{}, wrapError("create_course", "failed to raise event", err, courseEntity, course.ID.String())
	}

	log.Info("course created",
		slog.String("course_id", course.ID.String()),
		slog.String("owner_id", course.OwnerID.String()))
	return Created{ID: course.ID}, nil
}

// GetCourse reads one course.
func (h *Handlers) GetCourse(ctx context.Context, req GetCourse) (CourseDTO, error) {
	course, err := h.courses.GetByID(ctx, req.ID)
	if err != nil {
		return CourseDTO{}, wrapError("get_course", "failed to retrieve course", err, courseEntity, req.ID.String())
	}
	return mapping.Map[*domain.Course, CourseDTO](h.mappings, course)
}

// ListCourses reads one page of courses, newest first.
func (h *Handlers) ListCourses(ctx context.Context, req ListCourses) (PaginatedList[CourseSummary], error) {
	offset := (req.PageNumber - 1) * req.PageSize
	courses, total, err := h.courses.List(ctx, offset, req.PageSize)
	if err != nil {
		return PaginatedList[CourseSummary]{}, wrapError("list_courses", "failed to list courses", err, courseEntity, "")
	}

	items, err := mapping.MapSlice[*domain.Course, CourseSummary](h.mappings, courses)
	if err != nil {
		return PaginatedList[CourseSummary]{}, err
	}
	return NewPaginatedList(items, total, req.PageNumber, req.PageSize), nil
}

// UpdateCourse applies a JSON Patch document to the editable fields of a
// course. Nothing is written unless every operation applies and the result
// is valid.
func (h *Handlers) UpdateCourse(ctx context.Context, req UpdateCourse) (NoContent, error) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	doc, err := patch.Decode(req.Patch)
	if err != nil {
		return NoContent{}, err
	}

	course, err := h.courses.GetByID(ctx, req.ID)
	if err != nil {
		return NoContent{}, wrapError("update_course", "failed to retrieve course", err, courseEntity, req.ID.String())
	}
	if doc.Len() == 0 {
		return NoContent{}, nil
	}

	model, err := patch.Apply(ctx, doc, course,
		mapping.Projector[*domain.Course, UpdateCourseModel](h.mappings), h.validators)
	if err != nil {
		return NoContent{}, err
	}

	model.apply(course)
	if err := course.Validate(); err != nil {
		return NoContent{}, err
	}
	if err := h.courses.Update(ctx, course); err != nil {
		return NoContent{}, wrapError("update_course", "failed to save course", err, courseEntity, req.ID.String())
	}

	log.Info("course updated",
		slog.String("course_id", course.ID.String()),
		slog.Int("operations", doc.Len()))
	return NoContent{}, nil
}

// DeleteCourse soft deletes a course together with its lessons.
func (h *Handlers) DeleteCourse(ctx context.Context, req DeleteCourse) (NoContent, error) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	var lessons int64
	err := store.RunInTransaction(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.courses.WithTx(tx).Delete(ctx, req.ID); err != nil {
			return err
		}
		n, err := h.lessons.WithTx(tx).DeleteByCourse(ctx, req.ID)
		lessons = n
		return err
	})
	if err != nil {
		return NoContent{}, wrapError("delete_course", "failed to delete course", err, courseEntity, req.ID.String())
	}

	log.Info("course deleted",
		slog.String("course_id", req.ID.String()),
		slog.Int64("lessons_deleted", lessons))
	return NoContent{}, nil
}

// PublishCourse publishes a draft course and raises course.published.
// Publishing a published course changes nothing.
func (h *Handlers) PublishCourse(ctx context.Context, req PublishCourse) (NoContent, error) {
	course, err := h.courses.GetByID(ctx, req.ID)
	if err != nil {
		return NoContent{}, wrapError("publish_course", "failed to retrieve course", err, courseEntity, req.ID.String())
	}

	changed, err := course.Publish(h.now())
	if err != nil || !changed {
		return NoContent{}, err
	}

	if err := h.courses.Update(ctx, course); err != nil {
		return NoContent{}, wrapError("publish_course", "failed to save course", err, courseEntity, req.ID.String())
	}
	if err := events.Raise(ctx, domain.EventCoursePublished, domain.CoursePublished{CourseID: course.ID}); err != nil {
		return NoContent{}, wrapError("publish_course", "failed to raise event", err, courseEntity, req.ID.String())
	}
	return NoContent{}, nil
}
