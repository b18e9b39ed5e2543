package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
)

// Created is the response of create requests.
type Created struct {
	ID uuid.UUID `json:"id"`
}

// NoContent is the response of requests that return nothing.
type NoContent struct{}

// CourseDTO is the full client view of a course.
type CourseDTO struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Description    *string       `json:"description,omitempty"`
	ExternalID     *string       `json:"externalId,omitempty"`
	Thumbnail      *string       `json:"thumbnail,omitempty"`
	Status         domain.Status `json:"status"`
	PublishedOn    *time.Time    `json:"publishedOn,omitempty"`
	OwnerID        uuid.UUID     `json:"ownerId"`
	CreatedBy      string        `json:"createdBy"`
	Created        time.Time     `json:"created"`
	LastModifiedBy string        `json:"lastModifiedBy"`
	LastModified   time.Time     `json:"lastModified"`
}

// CourseSummary is the list view of a course.
type CourseSummary struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Thumbnail   *string       `json:"thumbnail,omitempty"`
	Status      domain.Status `json:"status"`
	PublishedOn *time.Time    `json:"publishedOn,omitempty"`
}

// UpdateCourseModel is the editable projection of a course that patch
// documents operate on.
type UpdateCourseModel struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Thumbnail   *string `json:"thumbnail" validate:"omitempty,url"`
}

// LessonDTO is the full client view of a lesson.
type LessonDTO struct {
	ID           uuid.UUID            `json:"id"`
	CourseID     uuid.UUID            `json:"courseId"`
	Name         string               `json:"name"`
	Status       domain.Status        `json:"status"`
	Content      domain.LessonContent `json:"content"`
	Created      time.Time            `json:"created"`
	LastModified time.Time            `json:"lastModified"`
}

// LessonSummary is the list view of a lesson.
type LessonSummary struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Status      domain.Status      `json:"status"`
	ContentType domain.ContentType `json:"contentType"`
}

// PaginatedList is one page of items.
type PaginatedList[T any] struct {
	Items           []T  `json:"items"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	PageCount       int  `json:"pageCount"`
	TotalCount      int  `json:"totalCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPaginatedList computes the page metadata for items out of total.
func NewPaginatedList[T any](items []T, total, pageNumber, pageSize int) PaginatedList[T] {
	if items == nil {
		items = []T{}
	}
	pageCount := 0
	if pageSize > 0 {
		pageCount = (total + pageSize - 1) / pageSize
	}
	return PaginatedList[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		PageCount:       pageCount,
		TotalCount:      total,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < pageCount,
	}
}
