package store

import (
	"context"
	"time"

	"github.com/phrazzld/minimono-api/internal/domain"
)

// defaultActor is recorded when no actor resolver is configured.
const defaultActor = "system"

// Stamper fills in audit fields before writes.
type Stamper struct {
	now   func() time.Time
	actor func(ctx context.Context) string
}

// NewStamper creates a Stamper. A nil clock means time.Now and a nil actor
// resolver records "system".
func NewStamper(now func() time.Time, actor func(ctx context.Context) string) *Stamper {
	if now == nil {
		now = time.Now
	}
	if actor == nil {
		actor = func(context.Context) string { return defaultActor }
	}
	return &Stamper{now: now, actor: actor}
}

// Now returns the current time at the precision Postgres stores.
func (s *Stamper) Now() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// Actor returns the actor recorded for ctx.
func (s *Stamper) Actor(ctx context.Context) string {
	return s.actor(ctx)
}

// Created stamps every audit field of a new entity.
func (s *Stamper) Created(ctx context.Context, e domain.Auditable) {
	now, actor := s.Now(), s.Actor(ctx)
	a := e.AuditRecord()
	a.CreatedBy, a.Created = actor, now
	a.LastModifiedBy, a.LastModified = actor, now
}

// Modified stamps the modification fields of an existing entity.
func (s *Stamper) Modified(ctx context.Context, e domain.Auditable) {
	a := e.AuditRecord()
	a.LastModifiedBy, a.LastModified = s.Actor(ctx), s.Now()
}
