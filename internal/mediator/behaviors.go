package mediator

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/redact"
	"github.com/phrazzld/minimono-api/internal/validation"
)

// DefaultSlowThreshold is the handler time above which a request is logged
// as long running.
const DefaultSlowThreshold = 500 * time.Millisecond

// UnknownFailureKind labels errors outside the typed failure family in metrics.
const UnknownFailureKind = "unknown"

// Recorder receives request measurements.
type Recorder interface {
	ObserveDuration(request string, elapsed time.Duration)
	SlowRequest(request string)
	Failure(request, kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDuration(string, time.Duration) {}
func (nopRecorder) SlowRequest(string)                    {}
func (nopRecorder) Failure(string, string)                {}

// PanicError is returned in place of a panic raised further down the chain.
type PanicError struct {
	Request string
	Value   any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic while handling %s: %v", e.Request, e.Value)
}

type exceptionCapture struct {
	logger   *slog.Logger
	recorder Recorder
}

// ExceptionCapture returns the outermost behavior. It recovers panics into a
// *PanicError, logs every error that is not a typed failure together with the
// redacted request, and counts failures. Errors pass through unchanged.
func ExceptionCapture(l *slog.Logger, recorder Recorder) Behavior {
	if l == nil {
		l = slog.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &exceptionCapture{
		logger:   l,
		recorder: recorder,
	}
}

func (b *exceptionCapture) Invoke(ctx context.Context, call Call, next Next) (out any, err error) {
	log := componentLogger(ctx, b.logger, "exception_capture")

	defer func() {
		if p := recover(); p != nil {
			log.Error("request panicked",
				slog.String("request", call.Name),
				slog.Any("panic", p),
				slog.String("stack", string(debug.Stack())))
			out, err = nil, &PanicError{Request: call.Name, Value: p}
			b.recorder.Failure(call.Name, UnknownFailureKind)
		}
	}()

	out, err = next(ctx)
	if err == nil {
		return out, nil
	}

	if f, ok := domain.AsFailure(err); ok {
		b.recorder.Failure(call.Name, f.Kind().String())
		log.Debug("request failed",
			slog.String("request", call.Name),
			slog.String("kind", f.Kind().String()))
		return nil, err
	}

	b.recorder.Failure(call.Name, UnknownFailureKind)
	log.Error("unhandled error processing request",
		slog.String("request", call.Name),
		slog.String("payload", redact.Payload(call.Request)),
		slog.String("error", redact.Error(err)),
		slog.String("error_type", fmt.Sprintf("%T", err)))
	return nil, err
}

type validationBehavior struct {
	validators *validation.Registry
}

// Validation returns the behavior that runs the registered validators for
// the request and short-circuits with a *domain.ValidationError.
func Validation(validators *validation.Registry) Behavior {
	return &validationBehavior{validators: validators}
}

func (b *validationBehavior) Invoke(ctx context.Context, call Call, next Next) (any, error) {
	if err := b.validators.Validate(ctx, call.Request); err != nil {
		return nil, err
	}
	return next(ctx)
}

// CallerFunc resolves the caller id and a best-effort display name.
type CallerFunc func(ctx context.Context) (id, name string)

type performance struct {
	logger    *slog.Logger
	threshold time.Duration
	recorder  Recorder
	caller    CallerFunc
	now       func() time.Time
}

// PerformanceOption configures the Performance behavior.
type PerformanceOption func(*performance)

// WithThreshold overrides DefaultSlowThreshold.
func WithThreshold(d time.Duration) PerformanceOption {
	return func(p *performance) {
		if d > 0 {
			p.threshold = d
		}
	}
}

// WithRecorder sets where durations are recorded.
func WithRecorder(r Recorder) PerformanceOption {
	return func(p *performance) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithCaller sets how the caller of a slow request is named.
func WithCaller(fn CallerFunc) PerformanceOption {
	return func(p *performance) {
		if fn != nil {
			p.caller = fn
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PerformanceOption {
	return func(p *performance) {
		if now != nil {
			p.now = now
		}
	}
}

// Performance returns the behavior that times the rest of the chain and
// warns about requests slower than the threshold. It never changes the
// outcome of the request.
func Performance(l *slog.Logger, opts ...PerformanceOption) Behavior {
	if l == nil {
		l = slog.Default()
	}
	p := &performance{
		logger:    l,
		threshold: DefaultSlowThreshold,
		recorder:  nopRecorder{},
		caller:    func(context.Context) (string, string) { return "", "" },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *performance) Invoke(ctx context.Context, call Call, next Next) (any, error) {
	start := p.now()
	out, err := next(ctx)
	elapsed := p.now().Sub(start)

	p.recorder.ObserveDuration(call.Name, elapsed)
	if elapsed > p.threshold {
		p.recorder.SlowRequest(call.Name)
		id, name := p.caller(ctx)
		componentLogger(ctx, p.logger, "performance").Warn("long running request",
			slog.String("request", call.Name),
			slog.Int64("elapsed_ms", elapsed.Milliseconds()),
			slog.String("user_id", id),
			slog.String("user_name", name),
			slog.String("payload", redact.Payload(call.Request)))
	}
	return out, err
}
