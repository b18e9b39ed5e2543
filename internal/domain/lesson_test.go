package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewLesson(t *testing.T) {
	t.Parallel()
	courseID := uuid.New()

	lesson, err := NewLesson(courseID, "Goroutines", NewVideoContent("https://example.com/v.mp4", 90))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lesson.Status != StatusDraft {
		t.Errorf("Expected status %s, got %s", StatusDraft, lesson.Status)
	}
	if lesson.Content.Discriminator() != ContentVideo {
		t.Errorf("Expected video content, got %s", lesson.Content.Discriminator())
	}

	_, err = NewLesson(courseID, "", nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Failures.Len() != 2 {
		t.Errorf("Expected name and content failures, got %v", verr.Failures.Fields())
	}
}

func TestLessonReplaceContent(t *testing.T) {
	t.Parallel()
	lesson := &Lesson{ID: uuid.New(), Content: NewArticleContent("old", 3)}

	if err := lesson.ReplaceContent(NewArticleContent("new", 5)); err != nil {
		t.Fatalf("Expected same-type replacement to succeed, got %v", err)
	}
	if got := lesson.Content.(*ArticleContent).Body; got != "new" {
		t.Errorf("Expected body %q, got %q", "new", got)
	}

	err := lesson.ReplaceContent(NewQuizContent())
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if conflict.Expected != string(ContentQuiz) || conflict.Actual != string(ContentArticle) {
		t.Errorf("Unexpected conflict detail: %+v", conflict)
	}
}
