// Package transport abstracts the bidirectional channel beneath a
// socket link behind open/send/close/event primitives.
//
// A Transport dials asynchronously: Open returns immediately and the
// outcome arrives as an "open" or "error" event from the transport's own
// goroutine. All subsequent events for one transport instance are
// emitted from that same goroutine, so listeners observe them in order.
package transport
