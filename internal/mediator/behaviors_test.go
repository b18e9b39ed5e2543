package mediator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/minimono-api/internal/domain"
	"github.com/phrazzld/minimono-api/internal/platform/logger"
	"github.com/phrazzld/minimono-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	slow      []string
	failures  []string
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{durations: map[string]time.Duration{}}
}

func (r *fakeRecorder) ObserveDuration(request string, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations[request] = elapsed
}

func (r *fakeRecorder) SlowRequest(request string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slow = append(r.slow, request)
}

func (r *fakeRecorder) Failure(request, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, request+":"+kind)
}

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type secretRequest struct {
	Title    string `json:"title"`
	Password string `json:"password"`
}

func TestExceptionCapture_LogsUntypedErrors(t *testing.T) {
	log, buf := bufferLogger()
	rec := newFakeRecorder()
	boom := errors.New("disk on fire")

	m := New(WithBehaviors(ExceptionCapture(log, rec)))
	RegisterFunc(m, func(ctx context.Context, req secretRequest) (pong, error) {
		return pong{}, boom
	})

	_, err := Send[secretRequest, pong](context.Background(), m, secretRequest{Title: "t", Password: "hunter22"})

	assert.Same(t, boom, err, "errors pass through unchanged")
	out := buf.String()
	assert.Contains(t, out, "unhandled error processing request")
	assert.Contains(t, out, `"request":"secretRequest"`)
	assert.Contains(t, out, "disk on fire")
	assert.NotContains(t, out, "hunter22")
	assert.Equal(t, []string{"secretRequest:unknown"}, rec.failures)
}

func TestExceptionCapture_TypedFailuresAreNotErrors(t *testing.T) {
	log, buf := bufferLogger()
	rec := newFakeRecorder()

	m := New(WithBehaviors(ExceptionCapture(log, rec)))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		return pong{}, &domain.NotFoundError{Entity: "course", ID: "x"}
	})

	_, err := Send[ping, pong](context.Background(), m, ping{})

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.NotContains(t, buf.String(), `"level":"ERROR"`)
	assert.Equal(t, []string{"ping:not_found"}, rec.failures)
}

func TestExceptionCapture_RecoversPanics(t *testing.T) {
	log, buf := bufferLogger()

	m := New(WithBehaviors(ExceptionCapture(log, nil)))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		panic("nil map write")
	})

	_, err := Send[ping, pong](context.Background(), m, ping{})

	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "ping", perr.Request)
	assert.Equal(t, "nil map write", perr.Value)
	assert.Contains(t, buf.String(), "request panicked")
}

func TestValidationBehavior(t *testing.T) {
	reg := validation.NewRegistry()
	validation.Register[ping](reg, validation.Func[ping](func(ctx context.Context, p ping) ([]domain.FieldFailure, error) {
		if p.Text == "" {
			return []domain.FieldFailure{validation.Failure("text", "must not be empty")}, nil
		}
		return nil, nil
	}))

	calls := 0
	m := New(WithBehaviors(Validation(reg)))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		calls++
		return pong{Text: req.Text}, nil
	})

	_, err := Send[ping, pong](context.Background(), m, ping{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"must not be empty"}, verr.Failures.Messages("text"))
	assert.Equal(t, 0, calls)

	got, err := Send[ping, pong](context.Background(), m, ping{Text: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Text)
	assert.Equal(t, 1, calls)
}

func TestPerformance_MeasuresOnlyInnerStages(t *testing.T) {
	log, buf := bufferLogger()
	clock := &fakeClock{now: time.Unix(0, 0)}
	rec := newFakeRecorder()

	slowOuter := BehaviorFunc(func(ctx context.Context, call Call, next Next) (any, error) {
		clock.Advance(10 * time.Second)
		return next(ctx)
	})

	m := New(WithBehaviors(
		slowOuter,
		Performance(log, WithClock(clock.Now), WithRecorder(rec)),
	))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		clock.Advance(100 * time.Millisecond)
		return pong{}, nil
	})

	_, err := Send[ping, pong](context.Background(), m, ping{})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, rec.durations["ping"])
	assert.Empty(t, rec.slow)
	assert.NotContains(t, buf.String(), "long running request")
}

func TestPerformance_WarnsAboveThreshold(t *testing.T) {
	log, buf := bufferLogger()
	clock := &fakeClock{now: time.Unix(0, 0)}
	rec := newFakeRecorder()
	handlerErr := errors.New("still failing")

	m := New(WithBehaviors(Performance(log,
		WithClock(clock.Now),
		WithRecorder(rec),
		WithCaller(func(context.Context) (string, string) { return "user-1", "Ada" }),
	)))
	RegisterFunc(m, func(ctx context.Context, req secretRequest) (pong, error) {
		clock.Advance(DefaultSlowThreshold + time.Millisecond)
		return pong{}, handlerErr
	})

	_, err := Send[secretRequest, pong](context.Background(), m, secretRequest{Title: "slow", Password: "hunter22"})

	assert.Same(t, handlerErr, err, "the outcome is never altered")
	assert.Equal(t, []string{"secretRequest"}, rec.slow)
	out := buf.String()
	assert.Contains(t, out, "long running request")
	assert.Contains(t, out, `"elapsed_ms":501`)
	assert.Contains(t, out, `"user_id":"user-1"`)
	assert.Contains(t, out, `"user_name":"Ada"`)
	assert.Contains(t, out, "slow")
	assert.NotContains(t, out, "hunter22")
}

func TestBehaviorsTagRequestScopedLogger(t *testing.T) {
	fallback, fallbackBuf := bufferLogger()
	scoped, scopedBuf := bufferLogger()
	ctx := logger.WithLogger(context.Background(), scoped.With("trace_id", "trace-1"))
	clock := &fakeClock{now: time.Unix(0, 0)}

	m := New(WithBehaviors(
		ExceptionCapture(fallback, nil),
		Performance(fallback, WithClock(clock.Now)),
	))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		clock.Advance(time.Second)
		return pong{}, errors.New("disk on fire")
	})

	_, err := Send[ping, pong](ctx, m, ping{})
	require.Error(t, err)

	out := scopedBuf.String()
	assert.Contains(t, out, `"component":"performance"`)
	assert.Contains(t, out, `"component":"exception_capture"`)
	assert.Contains(t, out, `"trace_id":"trace-1"`)
	assert.Empty(t, fallbackBuf.String())
}

func TestPerformance_Threshold(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	rec := newFakeRecorder()

	m := New(WithBehaviors(Performance(nil,
		WithClock(clock.Now),
		WithRecorder(rec),
		WithThreshold(50*time.Millisecond),
	)))
	RegisterFunc(m, func(ctx context.Context, req ping) (pong, error) {
		clock.Advance(50 * time.Millisecond)
		return pong{}, nil
	})

	_, err := Send[ping, pong](context.Background(), m, ping{})
	require.NoError(t, err)
	assert.Empty(t, rec.slow, "exactly the threshold is not slow")
}
