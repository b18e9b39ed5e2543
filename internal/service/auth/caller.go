package auth

import (
	"context"

	"github.com/google/uuid"
)

// SystemActor is recorded in audit fields when no caller is known.
const SystemActor = "system"

type callerKey struct{}

// Caller identifies the authenticated user behind a request.
type Caller struct {
	ID   uuid.UUID
	Name string
}

// WithCaller returns a context carrying caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller placed in ctx by the auth middleware.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok && c.ID != uuid.Nil
}

// UserIDFromContext returns the caller id, if any.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	c, ok := CallerFromContext(ctx)
	return c.ID, ok
}

// ActorFromContext names the caller for audit records.
func ActorFromContext(ctx context.Context) string {
	if c, ok := CallerFromContext(ctx); ok {
		return c.ID.String()
	}
	return SystemActor
}
