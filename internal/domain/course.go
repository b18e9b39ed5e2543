package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Status is the publication state shared by courses and lessons.
type Status string

const (
	// StatusDraft is the initial state of every course and lesson.
	StatusDraft Status = "draft"

	// StatusPublished marks content visible to learners.
	StatusPublished Status = "published"

	// StatusArchived marks content withdrawn from learners.
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Field limits shared by validators and the schema.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Course is a titled collection of lessons owned by a single user.
type Course struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	ExternalID  *string    `json:"externalId,omitempty"`
	Thumbnail   *string    `json:"thumbnail,omitempty"`
	PublishedOn *time.Time `json:"publishedOn,omitempty"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Status      Status     `json:"status"`
	Audit
}

// NewCourse creates a draft course owned by ownerID.
func NewCourse(ownerID uuid.UUID, title string) (*Course, error) {
	c := &Course{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(title),
		OwnerID: ownerID,
		Status:  StatusDraft,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// AuditRecord implements Auditable.
func (c *Course) AuditRecord() *Audit { return &c.Audit }

// Validate checks the invariants every stored course must satisfy.
func (c *Course) Validate() error {
	set := NewFailureSet()
	if c.ID == uuid.Nil {
		set.Add("id", "must not be empty")
	}
	if c.OwnerID == uuid.Nil {
		set.Add("ownerId", "must not be empty")
	}
	if strings.TrimSpace(c.Title) == "" {
		set.Add("title", "must not be empty")
	} else if utf8.RuneCountInString(c.Title) > MaxTitleLength {
		set.Add("title", "must be at most 200 characters")
	}
	if c.Description != nil && utf8.RuneCountInString(*c.Description) > MaxDescriptionLength {
		set.Add("description", "must be at most 2000 characters")
	}
	if c.Thumbnail != nil && !IsAbsoluteURL(*c.Thumbnail) {
		set.Add("thumbnail", "must be an absolute URL")
	}
	if !c.Status.Valid() {
		set.Add("status", "must be one of draft, published, archived")
	}
	if set.Len() > 0 {
		return &ValidationError{Failures: set}
	}
	return nil
}

// Publish moves a draft course to published. Publishing an already published
// course is a no-op; archived courses cannot be published.
func (c *Course) Publish(now time.Time) (bool, error) {
	switch c.Status {
	case StatusPublished:
		return false, nil
	case StatusArchived:
		return false, &ConflictError{
			Entity:   "course",
			ID:       c.ID.String(),
			Expected: string(StatusDraft),
			Actual:   string(StatusArchived),
		}
	}
	c.Status = StatusPublished
	published := now.UTC()
	c.PublishedOn = &published
	return true, nil
}

// IsAbsoluteURL reports whether raw parses as an absolute URL with a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
