package postgres_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/platform/postgres"
	"github.com/phrazzld/minimono-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow     = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	courseCols  = []string{"id", "title", "description", "external_id", "thumbnail", "published_on", "owner_id", "status", "created_by", "created", "last_modified_by", "last_modified"}
	testStamper = store.NewStamper(func() time.Time { return testNow }, func(context.Context) string { return "tester" })
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

// nullable converts an optional column to the value a driver returns.
func nullable[T any](p *T) driver.Value {
	if p == nil {
		return nil
	}
	return *p
}

func courseRow(c *domain.Course) *sqlmock.Rows {
	return sqlmock.NewRows(courseCols).AddRow(
		c.ID.String(), c.Title, nullable(c.Description), nullable(c.ExternalID), nullable(c.Thumbnail),
		nullable(c.PublishedOn), c.OwnerID.String(), string(c.Status),
		c.CreatedBy, c.Created, c.LastModifiedBy, c.LastModified,
	)
}

func sampleCourse(t *testing.T) *domain.Course {
	t.Helper()
	c, err := domain.NewCourse(uuid.New(), "Distributed Systems")
	require.NoError(t, err)
	return c
}

func TestCourseStore_Create(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)
	course := sampleCourse(t)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(course.ID, course.Title, nil, nil, nil, nil, course.OwnerID, "draft",
			"tester", testNow, "tester", testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), course))
	assert.Equal(t, "tester", course.CreatedBy)
	assert.Equal(t, testNow, course.Created)
}

func TestCourseStore_CreateRejectsInvalidCourse(t *testing.T) {
	t.Parallel()
	db, _ := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	err := s.Create(context.Background(), &domain.Course{ID: uuid.New(), Status: domain.StatusDraft})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Failures.Fields(), "title")
}

func TestCourseStore_CreateDuplicateExternalID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	mock.ExpectExec("INSERT INTO courses").WillReturnError(newPgError("23505"))

	err := s.Create(context.Background(), sampleCourse(t))
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestCourseStore_GetByID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	want := sampleCourse(t)
	desc := "consensus and replication"
	want.Description = &desc
	testStamper.Created(context.Background(), want)

	mock.ExpectQuery("SELECT (.+) FROM courses WHERE id = \\$1 AND deleted_at IS NULL").
		WithArgs(want.ID).
		WillReturnRows(courseRow(want))

	got, err := s.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCourseStore_GetByIDNotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	mock.ExpectQuery("SELECT (.+) FROM courses").WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrCourseNotFound)
}

func TestCourseStore_List(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	a, b := sampleCourse(t), sampleCourse(t)
	rows := courseRow(a)
	rows.AddRow(b.ID.String(), b.Title, nil, nil, nil, nil, b.OwnerID.String(), "draft", "x", testNow, "x", testNow)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT (.+) FROM courses\\s+WHERE deleted_at IS NULL\\s+ORDER BY created DESC").
		WithArgs(2, 4).
		WillReturnRows(rows)

	got, total, err := s.List(context.Background(), 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

func TestCourseStore_ListPastTheEnd(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	got, total, err := s.List(context.Background(), 25, 25)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, got)
}

func TestCourseStore_Update(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)
	course := sampleCourse(t)

	mock.ExpectExec("UPDATE courses\\s+SET title").
		WithArgs(course.ID, course.Title, nil, nil, nil, nil, "draft", "tester", testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Update(context.Background(), course))
	assert.Equal(t, testNow, course.LastModified)

	mock.ExpectExec("UPDATE courses").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Update(context.Background(), course), store.ErrCourseNotFound)
}

func TestCourseStore_Delete(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)
	id := uuid.New()

	mock.ExpectExec("UPDATE courses SET deleted_at = \\$2, deleted_by = \\$3").
		WithArgs(id, testNow, "tester").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, s.Delete(context.Background(), id))

	mock.ExpectExec("UPDATE courses SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrCourseNotFound)

	mock.ExpectExec("UPDATE courses SET deleted_at").WillReturnError(errors.New("connection reset"))
	assert.EqualError(t, s.Delete(context.Background(), id), "connection reset")
}

func TestCourseStore_WithTx(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	s := postgres.NewPostgresCourseStore(db, testStamper, nil)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE courses SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, id)
	})
	assert.NoError(t, err)
}
