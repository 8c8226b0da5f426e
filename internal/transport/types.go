package transport

import (
	"errors"
	"fmt"
	"time"
)

// Event names emitted by a Transport.
const (
	EventOpen    = "open"
	EventClose   = "close"
	EventError   = "error"
	EventMessage = "message"
)

// ErrNoTransport is returned when the configured capability list names
// no supported transport.
var ErrNoTransport = errors.New("no supported transport in capability list")

// ErrNotOpen is returned by Send when the transport is not open.
var ErrNotOpen = errors.New("transport not open")

// ReadyState is the lifecycle state of a single transport instance.
type ReadyState string

const (
	Opening ReadyState = "opening"
	Open    ReadyState = "open"
	Closing ReadyState = "closing"
	Closed  ReadyState = "closed"
)

// Error is a transport-class failure. The connection state machine keys
// its fatal-during-connect decision on this concrete type.
type Error struct {
	Op  string // "dial", "read", "write"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Event is the payload delivered to listeners. Data is set for message
// events, Err for error events.
type Event struct {
	Name string
	Data []byte
	Err  error
}

// Listener receives transport events.
type Listener func(Event)

// Options configure a transport instance.
type Options struct {
	// Path is appended to the host before the query string.
	Path string

	// Transports is the ordered capability list consulted by New.
	Transports []string

	// HandshakeTimeout bounds the dial.
	HandshakeTimeout time.Duration

	// WriteTimeout is the per-write deadline.
	WriteTimeout time.Duration
}

// Transport is a single bidirectional channel instance. One instance
// dials once; after close it is not reused.
type Transport interface {
	// Open starts the dial. The result is delivered as an "open" or
	// "error" event.
	Open()

	// Send writes one payload to the channel.
	Send(data []byte) error

	// Close tears the channel down. The terminal "close" event still
	// fires for listeners that remain attached.
	Close() error

	// On attaches a persistent listener for the named event.
	On(event string, fn Listener)

	// Once attaches a listener that is removed after its first delivery.
	Once(event string, fn Listener)

	// RemoveAllListeners detaches every listener for the named event.
	RemoveAllListeners(event string)

	// ReadyState returns the current lifecycle state.
	ReadyState() ReadyState
}
