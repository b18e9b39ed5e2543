// Package service contains the request handlers of the courses and lessons
// API. Every handler is registered with the mediator and reached through the
// behavior chain, so request validation has already happened by the time a
// handler runs.
//
// Handlers depend on the store interfaces, never on a concrete database, and
// translate store errors into domain failures. Domain events are recorded with
// events.Raise and published by the mediator once the handler has succeeded.
package service
