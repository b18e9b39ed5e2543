package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/store"
)

// mockCourseStore is a function-field mock of store.CourseStore.
type mockCourseStore struct {
	createFn  func(ctx context.Context, course *domain.Course) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	listFn    func(ctx context.Context, offset, limit int) ([]*domain.Course, int, error)
	updateFn  func(ctx context.Context, course *domain.Course) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error

	updated []*domain.Course
}

func (m *mockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	if m.createFn != nil {
		return m.createFn(ctx, course)
	}
	return nil
}

func (m *mockCourseStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrCourseNotFound
}

func (m *mockCourseStore) List(ctx context.Context, offset, limit int) ([]*domain.Course, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockCourseStore) Update(ctx context.Context, course *domain.Course) error {
	m.updated = append(m.updated, course)
	if m.updateFn != nil {
		return m.updateFn(ctx, course)
	}
	return nil
}

func (m *mockCourseStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCourseStore) WithTx(*sql.Tx) store.CourseStore { return m }

// mockLessonStore is a function-field mock of store.LessonStore.
type mockLessonStore struct {
	createFn         func(ctx context.Context, lesson *domain.Lesson) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	listByCourseFn   func(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error)
	updateContentFn  func(ctx context.Context, lesson *domain.Lesson) error
	deleteByCourseFn func(ctx context.Context, courseID uuid.UUID) (int64, error)
}

func (m *mockLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	if m.createFn != nil {
		return m.createFn(ctx, lesson)
	}
	return nil
}

func (m *mockLessonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrLessonNotFound
}

func (m *mockLessonStore) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	if m.listByCourseFn != nil {
		return m.listByCourseFn(ctx, courseID)
	}
	return nil, nil
}

func (m *mockLessonStore) UpdateContent(ctx context.Context, lesson *domain.Lesson) error {
	if m.updateContentFn != nil {
		return m.updateContentFn(ctx, lesson)
	}
	return nil
}

func (m *mockLessonStore) DeleteByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	if m.deleteByCourseFn != nil {
		return m.deleteByCourseFn(ctx, courseID)
	}
	return 0, nil
}

func (m *mockLessonStore) WithTx(*sql.Tx) store.LessonStore { return m }
