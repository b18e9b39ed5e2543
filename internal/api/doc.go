// Package api handles incoming HTTP requests for courses and lessons. Each
// handler turns an HTTP request into a service request, dispatches it through
// the mediator and writes the response, translating failures into status
// codes in one place.
package api
