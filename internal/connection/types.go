package connection

import (
	"errors"
	"time"

	"github.com/hublink/hublink-go/internal/envelope"
)

// Errors
var (
	// ErrInvalidConfiguration means no credential source (secret, token,
	// or auth callback) is present. Fatal at construction.
	ErrInvalidConfiguration = errors.New("no credential source configured")

	// ErrNotAuthorized means a connect was attempted without a usable
	// credential.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrDuplicateRequest means a request identifier already has a
	// pending entry. Programming error, reported synchronously.
	ErrDuplicateRequest = errors.New("duplicate request id")

	// ErrRequestTimeout completes a pending call whose response never
	// arrived. Delivered only to that call's handler.
	ErrRequestTimeout = errors.New("request timed out")

	// ErrNotConnected is returned when sending without an established
	// session.
	ErrNotConnected = errors.New("not connected")
)

// State is the connection lifecycle state. Exactly one value holds at a
// time and every transition is synchronous with the event causing it.
type State string

const (
	StateInitialized  State = "initialized"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
	StateClosing      State = "closing"
	StateClosed       State = "closed"
	StateFailed       State = "failed"
)

// Event names observable on a Conn: one per State value plus the two
// generic channels below.
const (
	EventInitialized  = string(StateInitialized)
	EventConnecting   = string(StateConnecting)
	EventConnected    = string(StateConnected)
	EventDisconnected = string(StateDisconnected)
	EventClosing      = string(StateClosing)
	EventClosed       = string(StateClosed)
	EventFailed       = string(StateFailed)

	// EventError surfaces a non-fatal transport error.
	EventError = "error"

	// EventMessage carries an uncorrelated, non-handshake inbound
	// envelope.
	EventMessage = "message"
)

// Event is the payload delivered to listeners. State is set for state
// transition events, Err for failure and error events, Envelope for
// message events.
type Event struct {
	State    State
	Err      error
	Envelope envelope.Envelope
}

// Listener receives connection events.
type Listener func(Event)

// Callback completes a correlated request exactly once: with the
// response envelope, an explicit error, or ErrRequestTimeout.
type Callback func(err error, env envelope.Envelope)

// reconnectInterval is the fixed delay between automatic reconnection
// attempts. No backoff, no jitter; the ceiling bounds the episode.
var reconnectInterval = 1000 * time.Millisecond
