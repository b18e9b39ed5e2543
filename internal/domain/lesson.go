package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxLessonNameLength bounds lesson names.
const MaxLessonNameLength = 200

// Lesson is a unit of content inside a course.
type Lesson struct {
	ID       uuid.UUID     `json:"id"`
	CourseID uuid.UUID     `json:"courseId"`
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Content  LessonContent `json:"content"`
	Audit
}

// NewLesson creates a draft lesson in courseID.
func NewLesson(courseID uuid.UUID, name string, content LessonContent) (*Lesson, error) {
	l := &Lesson{
		ID:       uuid.New(),
		CourseID: courseID,
		Name:     strings.TrimSpace(name),
		Status:   StatusDraft,
		Content:  content,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// AuditRecord implements Auditable.
func (l *Lesson) AuditRecord() *Audit { return &l.Audit }

// Validate checks the lesson invariants.
func (l *Lesson) Validate() error {
	set := NewFailureSet()
	if l.ID == uuid.Nil {
		set.Add("id", "must not be empty")
	}
	if l.CourseID == uuid.Nil {
		set.Add("courseId", "must not be empty")
	}
	if strings.TrimSpace(l.Name) == "" {
		set.Add("name", "must not be empty")
	} else if utf8.RuneCountInString(l.Name) > MaxLessonNameLength {
		set.Add("name", "must be at most 200 characters")
	}
	if !l.Status.Valid() {
		set.Add("status", "must be one of draft, published, archived")
	}
	if l.Content == nil {
		set.Add("content", "must not be empty")
	}
	if set.Len() > 0 {
		return &ValidationError{Failures: set}
	}
	return nil
}

// ReplaceContent swaps the lesson content. The incoming content must have the
// same discriminator as the stored content.
func (l *Lesson) ReplaceContent(content LessonContent) error {
	if content == nil {
		return NewValidationError("content", "must not be empty")
	}
	if l.Content != nil && l.Content.Discriminator() != content.Discriminator() {
		return &ConflictError{
			Entity:   "lesson",
			ID:       l.ID.String(),
			Expected: string(content.Discriminator()),
			Actual:   string(l.Content.Discriminator()),
		}
	}
	l.Content = content
	return nil
}
