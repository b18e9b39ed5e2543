// Package mediator dispatches typed requests to their single handler through
// an ordered chain of behaviors.
//
// A request type is paired with exactly one handler at startup with Register.
// Send resolves that handler, wraps it in the configured behaviors (the first
// behavior given to New is outermost), runs the chain and, once the handler
// has succeeded, publishes every domain event it recorded with events.Record.
package mediator
