package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	type coursePayload struct {
		CourseID uuid.UUID `json:"course_id"`
		Title    string    `json:"title"`
	}

	payload := coursePayload{CourseID: uuid.New(), Title: "Intro"}

	event, err := NewEvent("course.created", payload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "course.created", event.Type)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded coursePayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	_, err = NewEvent("bad", make(chan int))
	assert.Error(t, err, "unserializable payloads are rejected")
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestCollector(t *testing.T) {
	t.Run("record without collector", func(t *testing.T) {
		err := Raise(context.Background(), "course.created", nil)
		assert.ErrorIs(t, err, ErrNoCollector)
	})

	t.Run("record and drain in order", func(t *testing.T) {
		c := NewCollector()
		ctx := WithCollector(context.Background(), c)

		require.NoError(t, Raise(ctx, "first", map[string]int{"n": 1}))
		require.NoError(t, Raise(ctx, "second", map[string]int{"n": 2}))

		drained := c.Drain()
		require.Len(t, drained, 2)
		assert.Equal(t, "first", drained[0].Type)
		assert.Equal(t, "second", drained[1].Type)
		assert.Empty(t, c.Drain(), "drain empties the collector")
	})

	t.Run("collector lookup", func(t *testing.T) {
		_, ok := CollectorFrom(context.Background())
		assert.False(t, ok)

		c := NewCollector()
		got, ok := CollectorFrom(WithCollector(context.Background(), c))
		assert.True(t, ok)
		assert.Same(t, c, got)
	})
}
