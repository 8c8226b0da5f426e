package connection

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hublink/hublink-go/internal/auth"
	"github.com/hublink/hublink-go/internal/config"
	"github.com/hublink/hublink-go/internal/envelope"
	"github.com/hublink/hublink-go/internal/transport"
)

// Dialer creates a transport for a connection URL. Injectable so tests
// can substitute a fake.
type Dialer func(rawurl string, opts transport.Options, logger *slog.Logger) (transport.Transport, error)

// Conn is a resilient client-side connection to a message server. It
// owns at most one live transport at a time; before a new transport is
// attached, all listeners on any previous one are removed.
type Conn struct {
	emitter

	cfg    *config.Config
	logger *slog.Logger
	dial   Dialer

	calls *callRegistry

	mu           sync.Mutex
	state        State
	creds        auth.Credentials
	clientID     string
	connectionID string
	transport    transport.Transport
	retries      int
	retryTimer   *time.Timer
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conn) {
		c.logger = logger
	}
}

// WithDialer sets the transport factory.
func WithDialer(dial Dialer) Option {
	return func(c *Conn) {
		c.dial = dial
	}
}

// New creates a connection. Construction fails when the configuration
// carries no credential source at all. With an auth callback the first
// connect is deferred until the callback resolves; otherwise it runs
// immediately unless suppressed by NoAutoConnect.
func New(cfg *config.Config, opts ...Option) (*Conn, error) {
	cfg.ApplyDefaults()

	if !cfg.HasCredentialSource() {
		return nil, ErrInvalidConfiguration
	}

	c := &Conn{
		cfg:      cfg,
		logger:   slog.Default(),
		dial:     transport.New,
		calls:    newCallRegistry(),
		state:    StateInitialized,
		creds:    cfg.Credentials(),
		clientID: cfg.ClientID,
	}

	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("host", cfg.Host)

	switch {
	case cfg.AuthCallback != nil:
		go c.resolveAuth()
	case !cfg.NoAutoConnect:
		go c.Connect()
	}

	return c, nil
}

// State returns the current connection state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ClientID returns the client identifier, caller-supplied or adopted
// from the handshake.
func (c *Conn) ClientID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientID
}

// ConnectionID returns the server-assigned connection identifier, empty
// before the first handshake.
func (c *Conn) ConnectionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectionID
}

// HasAuth reports whether a usable credential is present.
func (c *Conn) HasAuth() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds.HasAuth()
}

// PendingCalls returns the number of outstanding correlated requests.
func (c *Conn) PendingCalls() int {
	return c.calls.len()
}

// resolveAuth runs the auth callback and connects on success. Auth
// failures are terminal: no retry is scheduled for them.
func (c *Conn) resolveAuth() {
	result, err := c.cfg.AuthCallback(context.Background())
	if err != nil {
		c.failAuth(err)
		return
	}

	token, ok := auth.TokenFrom(result)
	if !ok {
		c.failAuth(auth.ErrEmptyToken)
		return
	}

	c.mu.Lock()
	c.creds.Token = token
	c.mu.Unlock()

	c.Connect()
}

func (c *Conn) failAuth(err error) {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()

	c.logger.Error("auth resolution failed", "error", err)
	c.emit(EventFailed, Event{State: StateFailed, Err: err})
}

// Connect establishes the link. A no-op when already connected with a
// live transport. Manual calls are independent of the reconnection
// policy and never consume retry budget.
func (c *Conn) Connect() error {
	c.mu.Lock()
	if c.state == StateConnected && c.transport != nil && c.transport.ReadyState() == transport.Open {
		c.mu.Unlock()
		return nil
	}
	if !c.creds.HasAuth() {
		c.state = StateFailed
		c.mu.Unlock()
		c.emit(EventFailed, Event{State: StateFailed, Err: ErrNotAuthorized})
		return ErrNotAuthorized
	}
	c.state = StateConnecting
	old := c.transport
	c.transport = nil
	rawurl := BuildConnectURL(c.cfg.Secure, c.cfg.Host, c.creds, c.clientID)
	c.mu.Unlock()

	// At most one live transport carries listeners at a time: tear the
	// previous one down before opening its replacement.
	if old != nil {
		detachAll(old)
		old.Close()
	}

	c.emit(EventConnecting, Event{State: StateConnecting})

	tr, err := c.dial(rawurl, transport.Options{
		Path:       c.cfg.Path,
		Transports: c.cfg.Transports,
	}, c.logger)
	if err != nil {
		c.mu.Lock()
		c.state = StateFailed
		c.mu.Unlock()
		c.emit(EventFailed, Event{State: StateFailed, Err: err})
		return err
	}

	c.mu.Lock()
	c.transport = tr
	c.mu.Unlock()

	// One-shot open and error listeners go on before anything else.
	tr.Once(transport.EventOpen, func(transport.Event) { c.onOpen(tr) })
	tr.Once(transport.EventError, func(ev transport.Event) { c.onDialError(tr, ev.Err) })
	tr.Open()

	return nil
}

// Close requests teardown. The state moves to closing immediately; the
// terminal closed transition is driven by the transport's own close
// callback, which stays armed while error and message listeners detach.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.state == StateClosing || c.state == StateClosed {
		c.mu.Unlock()
		return nil
	}
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	c.state = StateClosing
	tr := c.transport
	c.mu.Unlock()

	c.emit(EventClosing, Event{State: StateClosing})

	if tr == nil {
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		c.emit(EventClosed, Event{State: StateClosed})
		return nil
	}

	tr.RemoveAllListeners(transport.EventError)
	tr.RemoveAllListeners(transport.EventMessage)
	tr.RemoveAllListeners(transport.EventClose)
	tr.On(transport.EventClose, func(transport.Event) { c.onClose(tr) })
	return tr.Close()
}

// Send writes one envelope to the server without correlation.
func (c *Conn) Send(env envelope.Envelope) error {
	c.mu.Lock()
	tr := c.transport
	state := c.state
	c.mu.Unlock()

	if state != StateConnected || tr == nil {
		return ErrNotConnected
	}

	data, err := env.Encode()
	if err != nil {
		return err
	}
	return tr.Send(data)
}

// Request sends an envelope stamped with a generated request identifier
// and registers handler for the correlated response. The handler runs
// exactly once: with the response, or with ErrRequestTimeout when none
// arrives within the configured request timeout. The request id is
// returned for bookkeeping.
func (c *Conn) Request(env envelope.Envelope, handler Callback) (string, error) {
	c.mu.Lock()
	tr := c.transport
	state := c.state
	connID := c.connectionID
	c.mu.Unlock()

	if state != StateConnected || tr == nil {
		return "", ErrNotConnected
	}

	id := newRequestID(connID)
	env.SetReqID(id)

	if err := c.calls.add(id, handler, c.cfg.RequestTimeout); err != nil {
		return "", err
	}

	data, err := env.Encode()
	if err != nil {
		c.calls.drop(id)
		return "", err
	}
	if err := tr.Send(data); err != nil {
		c.calls.drop(id)
		return "", err
	}
	return id, nil
}

// onOpen wires the persistent listeners once the transport reports
// open. The session itself is not connected yet; only the handshake
// envelope says that.
func (c *Conn) onOpen(tr transport.Transport) {
	c.mu.Lock()
	if c.transport != tr {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	tr.RemoveAllListeners(transport.EventError)
	tr.RemoveAllListeners(transport.EventClose)
	tr.RemoveAllListeners(transport.EventMessage)
	tr.On(transport.EventClose, func(transport.Event) { c.onClose(tr) })
	tr.On(transport.EventError, func(ev transport.Event) { c.onError(tr, ev.Err) })
	tr.On(transport.EventMessage, func(ev transport.Event) { c.onMessage(tr, ev.Data) })
}

// onDialError handles a failure while still connecting. Only a
// transport-class error is fatal here; other error shapes during
// establishment are ignored (historical asymmetry, preserved
// deliberately).
func (c *Conn) onDialError(tr transport.Transport, err error) {
	c.mu.Lock()
	if c.transport != tr || c.state != StateConnecting {
		c.mu.Unlock()
		return
	}
	var terr *transport.Error
	if !errors.As(err, &terr) {
		c.mu.Unlock()
		return
	}
	c.state = StateFailed
	c.scheduleReconnectLocked()
	c.mu.Unlock()

	c.logger.Warn("transport failed during connect", "error", err)
	c.emit(EventFailed, Event{State: StateFailed, Err: err})
}

// onError surfaces an error on an established session without forcing a
// state change.
func (c *Conn) onError(tr transport.Transport, err error) {
	c.mu.Lock()
	if c.transport != tr {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.emit(EventError, Event{Err: err})
}

// onClose distinguishes caller-initiated teardown from an unexpected
// disconnect. Only the latter arms the reconnection policy.
func (c *Conn) onClose(tr transport.Transport) {
	c.mu.Lock()
	if c.transport != tr {
		c.mu.Unlock()
		return
	}
	if c.state == StateClosing {
		c.state = StateClosed
		c.transport = nil
		c.mu.Unlock()

		detachAll(tr)
		c.logger.Info("connection closed")
		c.emit(EventClosed, Event{State: StateClosed})
		return
	}
	c.state = StateDisconnected
	c.scheduleReconnectLocked()
	c.mu.Unlock()

	c.logger.Warn("connection lost")
	c.emit(EventDisconnected, Event{State: StateDisconnected})
}

// onMessage decodes an inbound payload and dispatches it: correlated
// responses complete their pending call, the handshake drives the
// connected transition, and everything else surfaces as a generic
// message event. Handshake fields are consumed, never re-emitted.
func (c *Conn) onMessage(tr transport.Transport, data []byte) {
	env, err := envelope.Parse(data)
	if err != nil {
		c.emit(EventError, Event{Err: err})
		return
	}

	// Completion happens independent of any action the envelope also
	// carries. An unknown id is a benign no-op (duplicate or stale).
	correlated := false
	if id := env.ReqID(); id != "" {
		correlated = c.calls.exec(id, nil, env)
	}

	if env.Action() == envelope.ActionConnected {
		c.handleHandshake(tr, env)
		return
	}

	if !correlated {
		c.emit(EventMessage, Event{Envelope: env})
	}
}

// handleHandshake adopts server-assigned identity, refreshes the token
// when one is provided, resets the retry counter, and establishes the
// session. It never fires from closing or closed.
func (c *Conn) handleHandshake(tr transport.Transport, env envelope.Envelope) {
	c.mu.Lock()
	if c.transport != tr || c.state == StateClosing || c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	if id := env.ClientID(); id != "" {
		c.clientID = id
	}
	if id := env.ConnectionID(); id != "" {
		c.connectionID = id
	}
	if token := env.Token(); token != "" {
		c.creds.Token = token
	}
	c.retries = 0
	c.state = StateConnected
	clientID, connectionID := c.clientID, c.connectionID
	c.mu.Unlock()

	c.logger.Info("session established",
		"client_id", clientID,
		"connection_id", connectionID,
	)
	c.emit(EventConnected, Event{State: StateConnected, Envelope: env})
}

func detachAll(tr transport.Transport) {
	tr.RemoveAllListeners(transport.EventOpen)
	tr.RemoveAllListeners(transport.EventClose)
	tr.RemoveAllListeners(transport.EventError)
	tr.RemoveAllListeners(transport.EventMessage)
}
