package events

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCollector is returned by Record when the context carries no collector,
// i.e. the caller is not running inside a dispatched request.
var ErrNoCollector = errors.New("no event collector in context")

type collectorKey struct{}

// Collector accumulates events raised while a single request is handled.
type Collector struct {
	mu     sync.Mutex
	events []*Event
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// WithCollector returns a context that carries c.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// CollectorFrom returns the collector carried by ctx.
func CollectorFrom(ctx context.Context) (*Collector, bool) {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	return c, ok && c != nil
}

// Record queues event for publication after the current request succeeds.
func Record(ctx context.Context, event *Event) error {
	c, ok := CollectorFrom(ctx)
	if !ok {
		return ErrNoCollector
	}
	c.Add(event)
	return nil
}

// Raise builds an event from payload and records it.
func Raise(ctx context.Context, eventType string, payload interface{}) error {
	event, err := NewEvent(eventType, payload)
	if err != nil {
		return err
	}
	return Record(ctx, event)
}

// Add appends event.
func (c *Collector) Add(event *Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

// Drain returns the queued events in the order they were recorded and
// empties the collector.
func (c *Collector) Drain() []*Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.events
	c.events = nil
	return out
}
