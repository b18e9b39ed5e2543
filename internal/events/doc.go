// Package events provides domain event types and the plumbing that publishes
// them.
//
// Request handlers never publish directly. They call Record or Raise, which
// queue the event in a Collector that the dispatcher places in the request
// context. After the handler returns successfully the dispatcher drains the
// collector and hands each event to an EventEmitter. A failed request
// publishes nothing.
package events
