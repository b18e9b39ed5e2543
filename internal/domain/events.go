package domain

import "github.com/google/uuid"

// Domain event types raised by request handlers.
const (
	EventCourseCreated   = "course.created"
	EventCoursePublished = "course.published"
	EventLessonCreated   = "lesson.created"
)

// CourseCreated is the payload of EventCourseCreated.
type CourseCreated struct {
	CourseID uuid.UUID `json:"course_id"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Title    string    `json:"title"`
}

// CoursePublished is the payload of EventCoursePublished.
type CoursePublished struct {
	CourseID uuid.UUID `json:"course_id"`
}

// LessonCreated is the payload of EventLessonCreated.
type LessonCreated struct {
	LessonID    uuid.UUID   `json:"lesson_id"`
	CourseID    uuid.UUID   `json:"course_id"`
	ContentType ContentType `json:"content_type"`
}
