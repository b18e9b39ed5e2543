package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/events"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
)

// Handler handles one request type.
type Handler[Req, Res any] interface {
	Handle(ctx context.Context, req Req) (Res, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Handle implements Handler.
func (f HandlerFunc[Req, Res]) Handle(ctx context.Context, req Req) (Res, error) {
	return f(ctx, req)
}

// Call describes the request travelling through the behavior chain.
type Call struct {
	// Name is the request type name, e.g. "CreateCourse".
	Name string
	// Request is the request value. Behaviors must not replace it.
	Request any
}

// Next runs the remainder of the chain.
type Next func(ctx context.Context) (any, error)

// Behavior is a cross-cutting stage wrapped around every handler.
type Behavior interface {
	Invoke(ctx context.Context, call Call, next Next) (any, error)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(ctx context.Context, call Call, next Next) (any, error)

// Invoke implements Behavior.
func (f BehaviorFunc) Invoke(ctx context.Context, call Call, next Next) (any, error) {
	return f(ctx, call, next)
}

type registration struct {
	response reflect.Type
	invoke   func(ctx context.Context, req any) (any, error)
}

// Mediator routes requests to handlers. It is configured at startup and
// read-only afterwards.
type Mediator struct {
	handlers  map[reflect.Type][]registration
	behaviors []Behavior
	publisher events.EventEmitter
	logger    *slog.Logger
}

// Option configures a Mediator.
type Option func(*Mediator)

// WithBehaviors appends behaviors to the chain, outermost first.
func WithBehaviors(behaviors ...Behavior) Option {
	return func(m *Mediator) {
		m.behaviors = append(m.behaviors, behaviors...)
	}
}

// WithPublisher sets where recorded events go after a successful handler.
func WithPublisher(p events.EventEmitter) Option {
	return func(m *Mediator) {
		m.publisher = p
	}
}

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mediator) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Mediator.
func New(opts ...Option) *Mediator {
	m := &Mediator{
		handlers: make(map[reflect.Type][]registration),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register pairs Req with h. Registering a second handler for the same
// request type is not rejected here; Send reports it as a configuration error.
func Register[Req, Res any](m *Mediator, h Handler[Req, Res]) {
	reqType := reflect.TypeFor[Req]()
	m.handlers[reqType] = append(m.handlers[reqType], registration{
		response: reflect.TypeFor[Res](),
		invoke: func(ctx context.Context, req any) (any, error) {
			return h.Handle(ctx, req.(Req))
		},
	})
}

// RegisterFunc is Register for a plain function.
func RegisterFunc[Req, Res any](m *Mediator, fn func(ctx context.Context, req Req) (Res, error)) {
	Register[Req, Res](m, HandlerFunc[Req, Res](fn))
}

// Send dispatches req to its handler through the behavior chain.
func Send[Req, Res any](ctx context.Context, m *Mediator, req Req) (Res, error) {
	var zero Res
	reqType := reflect.TypeFor[Req]()
	name := requestName(reqType)

	regs := m.handlers[reqType]
	if len(regs) == 0 {
		return zero, &domain.ConfigurationError{
			Message: fmt.Sprintf("no handler registered for %s", name),
		}
	}
	if len(regs) > 1 {
		return zero, &domain.ConfigurationError{
			Message: fmt.Sprintf("%d handlers registered for %s, expected exactly one", len(regs), name),
		}
	}
	reg := regs[0]
	if want := reflect.TypeFor[Res](); reg.response != want {
		return zero, &domain.ConfigurationError{
			Message: fmt.Sprintf("handler for %s returns %s, not %s", name, reg.response, want),
		}
	}
	if err := ctx.Err(); err != nil {
		return zero, &domain.CancelledError{Err: err}
	}

	collector := events.NewCollector()
	ctx = events.WithCollector(ctx, collector)

	call := Call{Name: name, Request: req}
	next := Next(func(ctx context.Context) (any, error) {
		return reg.invoke(ctx, req)
	})
	for i := len(m.behaviors) - 1; i >= 0; i-- {
		behavior, inner := m.behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return behavior.Invoke(ctx, call, inner)
		}
	}

	out, err := next(ctx)
	if err != nil {
		return zero, err
	}

	m.publish(ctx, name, collector.Drain())

	if out == nil {
		return zero, nil
	}
	res, ok := out.(Res)
	if !ok {
		return zero, &domain.ConfigurationError{
			Message: fmt.Sprintf("chain for %s produced %T, not %s", name, out, reflect.TypeFor[Res]()),
		}
	}
	return res, nil
}

// publish hands events to the publisher. The handler's work is already
// committed, so failures are logged and not returned.
func (m *Mediator) publish(ctx context.Context, request string, evs []*events.Event) {
	if len(evs) == 0 || m.publisher == nil {
		return
	}
	log := componentLogger(ctx, m.logger, "mediator")
	ctx = context.WithoutCancel(ctx)
	for _, ev := range evs {
		if err := m.publisher.EmitEvent(ctx, ev); err != nil {
			log.Warn("failed to publish domain event",
				slog.String("request", request),
				slog.String("event_type", ev.Type),
				slog.String("event_id", ev.ID.String()),
				slog.String("error", err.Error()))
		}
	}
}

// componentLogger prefers the request-scoped logger from ctx and tags it
// with component either way.
func componentLogger(ctx context.Context, fallback *slog.Logger, component string) *slog.Logger {
	return logger.FromContextOrDefault(ctx, fallback).With(slog.String("component", component))
}

func requestName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
