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

const lessonColumns = `id, course_id, name, status, content_type, content,
	created_by, created, last_modified_by, last_modified`

// ContentCodec reads and writes the JSONB content column. jsonb reorders
// object keys, so reads resolve the variant from the content_type column.
type ContentCodec interface {
	Marshal(content domain.LessonContent) ([]byte, error)
	UnmarshalAs(contentType domain.ContentType, data []byte) (domain.LessonContent, error)
}

// PostgresLessonStore implements store.LessonStore on PostgreSQL.
type PostgresLessonStore struct {
	db      store.DBTX
	codec   ContentCodec
	stamper *store.Stamper
	logger  *slog.Logger
}

// NewPostgresLessonStore creates a lesson store. The codec turns content
// into the discriminated JSON stored in the content column.
func NewPostgresLessonStore(
	db store.DBTX,
	codec ContentCodec,
	stamper *store.Stamper,
	logger *slog.Logger,
) *PostgresLessonStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if codec == nil {
		// ALLOW-PANIC: constructor misuse
		panic("codec cannot be nil")
	}
	if stamper == nil {
		stamper = store.NewStamper(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLessonStore{
		db:      db,
		codec:   codec,
		stamper: stamper,
		logger:  logger.With(slog.String("component", "lesson_store")),
	}
}

var _ store.LessonStore = (*PostgresLessonStore)(nil)

// Create implements store.LessonStore.Create.
// Returns store.ErrCourseNotFound if the parent course does not exist.
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}
	content, err := s.codec.Marshal(lesson.Content)
	if err != nil {
		return err
	}

	s.stamper.Created(ctx, lesson)

	query := `INSERT INTO lessons (id, course_id, name, status, content_type, content,
			created_by, created, last_modified_by, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = s.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.CourseID,
		lesson.Name,
		lesson.Status,
		lesson.Content.Discriminator(),
		content,
		lesson.CreatedBy,
		lesson.Created,
		lesson.LastModifiedBy,
		lesson.LastModified,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during lesson creation",
				slog.String("lesson_id", lesson.ID.String()),
				slog.String("course_id", lesson.CourseID.String()))
			return store.ErrCourseNotFound
		}
		log.Error("failed to create lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}

	log.Debug("lesson created",
		slog.String("lesson_id", lesson.ID.String()),
		slog.String("content_type", string(lesson.Content.Discriminator())))
	return nil
}

// GetByID implements store.LessonStore.GetByID.
func (s *PostgresLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1 AND deleted_at IS NULL`
	lesson, err := s.scanLesson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lesson not found", slog.String("lesson_id", id.String()))
			return nil, store.ErrLessonNotFound
		}
		log.Error("failed to get lesson",
			slog.String("error", err.Error()),
			slog.String("lesson_id", id.String()))
		return nil, MapError(err)
	}
	return lesson, nil
}

// ListByCourse implements store.LessonStore.ListByCourse.
func (s *PostgresLessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + lessonColumns + ` FROM lessons
		WHERE course_id = $1 AND deleted_at IS NULL
		ORDER BY created, id`
	rows, err := s.db.QueryContext(ctx, query, courseID)
	if err != nil {
		log.Error("failed to list lessons",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons := []*domain.Lesson{}
	for rows.Next() {
		lesson, err := s.scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return lessons, nil
}

// UpdateContent implements store.LessonStore.UpdateContent.
func (s *PostgresLessonStore) UpdateContent(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}
	content, err := s.codec.Marshal(lesson.Content)
	if err != nil {
		return err
	}

	s.stamper.Modified(ctx, lesson)

	result, err := s.db.ExecContext(ctx,
		`UPDATE lessons
			SET content_type = $2, content = $3, last_modified_by = $4, last_modified = $5
			WHERE id = $1 AND deleted_at IS NULL`,
		lesson.ID,
		lesson.Content.Discriminator(),
		content,
		lesson.LastModifiedBy,
		lesson.LastModified,
	)
	if err != nil {
		log.Error("failed to update lesson content",
			slog.String("error", err.Error()),
			slog.String("lesson_id", lesson.ID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrLessonNotFound)
}

// DeleteByCourse implements store.LessonStore.DeleteByCourse.
func (s *PostgresLessonStore) DeleteByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE lessons SET deleted_at = $2, deleted_by = $3 WHERE course_id = $1 AND deleted_at IS NULL`,
		courseID, s.stamper.Now(), s.stamper.Actor(ctx))
	if err != nil {
		log.Error("failed to delete lessons",
			slog.String("error", err.Error()),
			slog.String("course_id", courseID.String()))
		return 0, MapError(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// WithTx implements store.LessonStore.WithTx.
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{db: tx, codec: s.codec, stamper: s.stamper, logger: s.logger}
}

func (s *PostgresLessonStore) scanLesson(row rowScanner) (*domain.Lesson, error) {
	var (
		l           domain.Lesson
		contentType string
		content     []byte
	)
	err := row.Scan(
		&l.ID,
		&l.CourseID,
		&l.Name,
		&l.Status,
		&contentType,
		&content,
		&l.CreatedBy,
		&l.Created,
		&l.LastModifiedBy,
		&l.LastModified,
	)
	if err != nil {
		return nil, err
	}

	// Stored content that no longer decodes is a server fault, not a bad request.
	l.Content, err = s.codec.UnmarshalAs(domain.ContentType(contentType), content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content of lesson %s: %v", l.ID, err)
	}
	return &l, nil
}
