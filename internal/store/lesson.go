package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
)

// LessonStore defines the interface for lesson persistence.
type LessonStore interface {
	// Create saves a new lesson. The parent course must exist.
	Create(ctx context.Context, lesson *domain.Lesson) error

	// GetByID retrieves a lesson by its unique ID with its content decoded.
	// Returns ErrLessonNotFound if the lesson does not exist or was deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)

	// ListByCourse returns the lessons of a course in creation order.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)

	// UpdateContent replaces the stored content of lesson.
	// Returns ErrLessonNotFound if the lesson does not exist or was deleted.
	UpdateContent(ctx context.Context, lesson *domain.Lesson) error

	// DeleteByCourse soft deletes every lesson of a course and returns how
	// many were deleted.
	DeleteByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)

	// WithTx returns a LessonStore that runs its statements in tx.
	WithTx(tx *sql.Tx) LessonStore
}
