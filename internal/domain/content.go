package domain

// ContentType discriminates the concrete LessonContent variants.
type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentArticle ContentType = "article"
	ContentQuiz    ContentType = "quiz"
)

// ContentTypes lists every ContentType member.
func ContentTypes() []ContentType {
	return []ContentType{ContentVideo, ContentArticle, ContentQuiz}
}

// ContentDiscriminator is the JSON property that names the content variant.
const ContentDiscriminator = "type"

// LessonContent is the polymorphic body of a lesson.
type LessonContent interface {
	Discriminator() ContentType
}

// ContentBase is embedded first in every variant so the discriminator is
// serialized as the first property.
type ContentBase struct {
	Type ContentType `json:"type"`
}

// Discriminator implements LessonContent.
func (b ContentBase) Discriminator() ContentType { return b.Type }

// VideoContent points at a hosted video.
type VideoContent struct {
	ContentBase
	URL             string `json:"url" validate:"required,url"`
	DurationSeconds int    `json:"durationSeconds" validate:"gte=0"`
}

// NewVideoContent returns video content with the discriminator set.
func NewVideoContent(url string, durationSeconds int) *VideoContent {
	return &VideoContent{ContentBase: ContentBase{Type: ContentVideo}, URL: url, DurationSeconds: durationSeconds}
}

// ArticleContent is a text body.
type ArticleContent struct {
	ContentBase
	Body           string `json:"body" validate:"required"`
	ReadingMinutes int    `json:"readingMinutes" validate:"gte=0"`
}

// NewArticleContent returns article content with the discriminator set.
func NewArticleContent(body string, readingMinutes int) *ArticleContent {
	return &ArticleContent{ContentBase: ContentBase{Type: ContentArticle}, Body: body, ReadingMinutes: readingMinutes}
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Prompt  string   `json:"prompt" validate:"required"`
	Choices []string `json:"choices" validate:"min=2,dive,required"`
	Answer  int      `json:"answer" validate:"gte=0"`
}

// QuizContent is a list of questions.
type QuizContent struct {
	ContentBase
	Questions []QuizQuestion `json:"questions" validate:"min=1,dive"`
}

// NewQuizContent returns quiz content with the discriminator set.
func NewQuizContent(questions ...QuizQuestion) *QuizContent {
	return &QuizContent{ContentBase: ContentBase{Type: ContentQuiz}, Questions: questions}
}
