package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCourse(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	course, err := NewCourse(ownerID, "  Intro to Go  ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if course.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}
	if course.Title != "Intro to Go" {
		t.Errorf("Expected trimmed title, got %q", course.Title)
	}
	if course.Status != StatusDraft {
		t.Errorf("Expected status %s, got %s", StatusDraft, course.Status)
	}
	if course.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, course.OwnerID)
	}

	_, err = NewCourse(ownerID, "   ")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if got := verr.Failures.Messages("title"); len(got) != 1 || got[0] != "must not be empty" {
		t.Errorf("Unexpected title failures: %v", got)
	}
}

func TestCourseValidate(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", MaxTitleLength+1)
	badURL := "not a url"
	longDesc := strings.Repeat("d", MaxDescriptionLength+1)

	tests := []struct {
		name   string
		mutate func(c *Course)
		fields []string
	}{
		{"valid", func(c *Course) {}, nil},
		{"title too long", func(c *Course) { c.Title = long }, []string{"title"}},
		{"relative thumbnail", func(c *Course) { c.Thumbnail = &badURL }, []string{"thumbnail"}},
		{"description too long", func(c *Course) { c.Description = &longDesc }, []string{"description"}},
		{"unknown status", func(c *Course) { c.Status = "pending" }, []string{"status"}},
		{
			"several failures",
			func(c *Course) { c.Title = ""; c.OwnerID = uuid.Nil },
			[]string{"ownerId", "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{ID: uuid.New(), OwnerID: uuid.New(), Title: "Go", Status: StatusDraft}
			tt.mutate(c)
			err := c.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			got := verr.Failures.Fields()
			if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("Expected fields %v, got %v", tt.fields, got)
			}
		})
	}
}

func TestCoursePublish(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	c := &Course{ID: uuid.New(), Status: StatusDraft}
	changed, err := c.Publish(now)
	if err != nil || !changed {
		t.Fatalf("Expected draft course to publish, got changed=%v err=%v", changed, err)
	}
	if c.Status != StatusPublished || c.PublishedOn == nil || !c.PublishedOn.Equal(now) {
		t.Errorf("Unexpected course after publish: %+v", c)
	}

	changed, err = c.Publish(now.Add(time.Hour))
	if err != nil || changed {
		t.Errorf("Expected republish to be a no-op, got changed=%v err=%v", changed, err)
	}
	if !c.PublishedOn.Equal(now) {
		t.Errorf("Expected PublishedOn to stay %v, got %v", now, c.PublishedOn)
	}

	archived := &Course{ID: uuid.New(), Status: StatusArchived}
	_, err = archived.Publish(now)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("Expected error to wrap ErrConflict")
	}
}
