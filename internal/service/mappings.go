package service

import (
	"errors"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/mapping"
)

// RegisterMappings adds every projection the handlers use to r.
func RegisterMappings(r *mapping.Registry) error {
	return errors.Join(
		mapping.Register(r, courseToDTO),
		mapping.Register(r, courseToSummary),
		mapping.Register(r, courseToUpdateModel),
		mapping.Register(r, lessonToDTO),
		mapping.Register(r, lessonToSummary),
	)
}

func courseToDTO(c *domain.Course) CourseDTO {
	return CourseDTO{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		ExternalID:     c.ExternalID,
		Thumbnail:      c.Thumbnail,
		Status:         c.Status,
		PublishedOn:    c.PublishedOn,
		OwnerID:        c.OwnerID,
		CreatedBy:      c.CreatedBy,
		Created:        c.Created,
		LastModifiedBy: c.LastModifiedBy,
		LastModified:   c.LastModified,
	}
}

func courseToSummary(c *domain.Course) CourseSummary {
	return CourseSummary{
		ID:          c.ID,
		Title:       c.Title,
		Thumbnail:   c.Thumbnail,
		Status:      c.Status,
		PublishedOn: c.PublishedOn,
	}
}

func courseToUpdateModel(c *domain.Course) UpdateCourseModel {
	return UpdateCourseModel{
		Title:       c.Title,
		Description: c.Description,
		Thumbnail:   c.Thumbnail,
	}
}

func lessonToDTO(l *domain.Lesson) LessonDTO {
	return LessonDTO{
		ID:           l.ID,
		CourseID:     l.CourseID,
		Name:         l.Name,
		Status:       l.Status,
		Content:      l.Content,
		Created:      l.Created,
		LastModified: l.LastModified,
	}
}

func lessonToSummary(l *domain.Lesson) LessonSummary {
	s := LessonSummary{ID: l.ID, Name: l.Name, Status: l.Status}
	if l.Content != nil {
		s.ContentType = l.Content.Discriminator()
	}
	return s
}

// apply writes the edited fields back onto course.
func (m UpdateCourseModel) apply(course *domain.Course) {
	course.Title = m.Title
	course.Description = m.Description
	course.Thumbnail = m.Thumbnail
}
