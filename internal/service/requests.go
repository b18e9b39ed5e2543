package service

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
)

// Pagination defaults and bounds.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 25
	MaxPageSize       = 100
)

// CreateCourse creates a draft course owned by the caller.
type CreateCourse struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ExternalID  *string `json:"externalId,omitempty" validate:"omitempty,max=100"`
	Thumbnail   *string `json:"thumbnail,omitempty" validate:"omitempty,url"`
}

// GetCourse reads one course.
type GetCourse struct {
	ID uuid.UUID `json:"id"`
}

// ListCourses reads one page of courses.
type ListCourses struct {
	PageNumber int `json:"pageNumber" validate:"gte=1"`
	PageSize   int `json:"pageSize"`
}

// UpdateCourse applies a JSON Patch document to a course.
type UpdateCourse struct {
	ID    uuid.UUID       `json:"id"`
	Patch json.RawMessage `json:"patch"`
}

// DeleteCourse soft deletes a course and its lessons.
type DeleteCourse struct {
	ID uuid.UUID `json:"id"`
}

// PublishCourse moves a draft course to published.
type PublishCourse struct {
	ID uuid.UUID `json:"id"`
}

// CreateLesson adds a lesson to a course.
type CreateLesson struct {
	CourseID uuid.UUID            `json:"courseId"`
	Name     string               `json:"name" validate:"required,max=200"`
	Content  domain.LessonContent `json:"content" validate:"-"`
}

// GetLesson reads one lesson.
type GetLesson struct {
	ID uuid.UUID `json:"id"`
}

// ListLessons reads the lessons of a course.
type ListLessons struct {
	CourseID uuid.UUID `json:"courseId"`
}

// ReplaceLessonContent swaps the content of a lesson for content of the same
// type.
type ReplaceLessonContent struct {
	LessonID uuid.UUID            `json:"lessonId"`
	Content  domain.LessonContent `json:"content"`
}
