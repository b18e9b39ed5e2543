package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
	"github.com/phrazzld/minimono-api/internal/store"
)

const courseColumns = `id, title, description, external_id, thumbnail, published_on, owner_id, status,
	created_by, created, last_modified_by, last_modified`

// PostgresCourseStore implements store.CourseStore on PostgreSQL.
type PostgresCourseStore struct {
	db      store.DBTX
	stamper *store.Stamper
	logger  *slog.Logger
}

// NewPostgresCourseStore creates a course store on a connection or transaction
// managed by the caller. A nil stamper records the "system" actor and a nil
// logger uses the default.
func NewPostgresCourseStore(db store.DBTX, stamper *store.Stamper, logger *slog.Logger) *PostgresCourseStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if stamper == nil {
		stamper = store.NewStamper(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCourseStore{
		db:      db,
		stamper: stamper,
		logger:  logger.With(slog.String("component", "course_store")),
	}
}

var _ store.CourseStore = (*PostgresCourseStore)(nil)

// Create implements store.CourseStore.Create.
func (s *PostgresCourseStore) Create(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during create",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	s.stamper.Created(ctx, course)

	query := `INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.ExternalID,
		course.Thumbnail,
		course.PublishedOn,
		course.OwnerID,
		course.Status,
		course.CreatedBy,
		course.Created,
		course.LastModifiedBy,
		course.LastModified,
	)
	if err != nil {
		log.Error("failed to create course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}

	log.Debug("course created", slog.String("course_id", course.ID.String()))
	return nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *PostgresCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 AND deleted_at IS NULL`
	course, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("course not found", slog.String("course_id", id.String()))
			return nil, store.ErrCourseNotFound
		}
		log.Error("failed to get course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return nil, MapError(err)
	}
	return course, nil
}

// List implements store.CourseStore.List.
func (s *PostgresCourseStore) List(ctx context.Context, offset, limit int) ([]*domain.Course, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM courses WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		log.Error("failed to count courses", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	if total == 0 || offset >= total {
		return []*domain.Course{}, total, nil
	}

	query := `SELECT ` + courseColumns + ` FROM courses
		WHERE deleted_at IS NULL
		ORDER BY created DESC, id
		LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	courses := make([]*domain.Course, 0, limit)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}
	return courses, total, nil
}

// Update implements store.CourseStore.Update.
func (s *PostgresCourseStore) Update(ctx context.Context, course *domain.Course) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		log.Warn("course validation failed during update",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return err
	}

	s.stamper.Modified(ctx, course)

	query := `UPDATE courses
		SET title = $2, description = $3, external_id = $4, thumbnail = $5,
			published_on = $6, status = $7, last_modified_by = $8, last_modified = $9
		WHERE id = $1 AND deleted_at IS NULL`
	result, err := s.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		course.ExternalID,
		course.Thumbnail,
		course.PublishedOn,
		course.Status,
		course.LastModifiedBy,
		course.LastModified,
	)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.String("course_id", course.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCourseNotFound)
}

// Delete implements store.CourseStore.Delete.
func (s *PostgresCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE courses SET deleted_at = $2, deleted_by = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, s.stamper.Now(), s.stamper.Actor(ctx))
	if err != nil {
		log.Error("failed to delete course",
			slog.String("error", err.Error()),
			slog.String("course_id", id.String()))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrCourseNotFound); err != nil {
		return err
	}

	log.Debug("course deleted", slog.String("course_id", id.String()))
	return nil
}

// WithTx implements store.CourseStore.WithTx.
func (s *PostgresCourseStore) WithTx(tx *sql.Tx) store.CourseStore {
	return &PostgresCourseStore{db: tx, stamper: s.stamper, logger: s.logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.ExternalID,
		&c.Thumbnail,
		&c.PublishedOn,
		&c.OwnerID,
		&c.Status,
		&c.CreatedBy,
		&c.Created,
		&c.LastModifiedBy,
		&c.LastModified,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
