package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
)

// CourseStore defines the interface for course persistence.
type CourseStore interface {
	// Create saves a new course. The audit fields are stamped by the store.
	Create(ctx context.Context, course *domain.Course) error

	// GetByID retrieves a course by its unique ID.
	// Returns ErrCourseNotFound if the course does not exist or was deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// List returns one page of courses ordered by creation time, newest
	// first, together with the total number of courses.
	List(ctx context.Context, offset, limit int) ([]*domain.Course, int, error)

	// Update writes every mutable column of course and restamps its
	// modification audit fields.
	// Returns ErrCourseNotFound if the course does not exist or was deleted.
	Update(ctx context.Context, course *domain.Course) error

	// Delete soft deletes a course.
	// Returns ErrCourseNotFound if the course does not exist or was already deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CourseStore that runs its statements in tx.
	WithTx(tx *sql.Tx) CourseStore
}
