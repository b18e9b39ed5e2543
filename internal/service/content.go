package service

import (
	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/polymorph"
)

// ContentRegistry binds every lesson content type to its concrete struct.
type ContentRegistry = polymorph.Registry[domain.ContentType, domain.LessonContent]

// ContentConverter reads and writes lesson content JSON.
type ContentConverter = polymorph.Converter[domain.ContentType, domain.LessonContent]

// NewContentRegistry returns the registry of lesson content types. Callers
// should Verify it before serving traffic.
func NewContentRegistry() *ContentRegistry {
	return polymorph.NewRegistry[domain.ContentType, domain.LessonContent](
		domain.ContentDiscriminator, domain.ContentTypes()...).
		MustBind(domain.ContentVideo, func() domain.LessonContent { return &domain.VideoContent{} }).
		MustBind(domain.ContentArticle, func() domain.LessonContent { return &domain.ArticleContent{} }).
		MustBind(domain.ContentQuiz, func() domain.LessonContent { return &domain.QuizContent{} })
}

// NewContentConverter returns a converter over registry.
func NewContentConverter(registry *ContentRegistry, opts ...polymorph.Option) *ContentConverter {
	return polymorph.NewConverter(registry, opts...)
}
