package transport

import (
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultWriteTimeout     = 5 * time.Second
)

// WebSocket is the websocket-backed Transport implementation.
type WebSocket struct {
	emitter

	url    string
	opts   Options
	logger *slog.Logger

	// Write serialization
	writeMu sync.Mutex

	mu    sync.Mutex
	state ReadyState
	conn  *websocket.Conn
	done  chan struct{}

	closeOnce sync.Once
}

// NewWebSocket creates a websocket transport for the given connection
// URL. The URL carries host and query; opts.Path is inserted at dial
// time.
func NewWebSocket(rawurl string, opts Options, logger *slog.Logger) *WebSocket {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HandshakeTimeout == 0 {
		opts.HandshakeTimeout = defaultHandshakeTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = defaultWriteTimeout
	}

	return &WebSocket{
		url:    rawurl,
		opts:   opts,
		logger: logger,
		state:  Closed,
		done:   make(chan struct{}),
	}
}

// Open starts the dial. The outcome arrives as an "open" or "error"
// event; on success the same goroutine continues as the read loop.
func (t *WebSocket) Open() {
	t.mu.Lock()
	t.state = Opening
	t.mu.Unlock()

	go t.dial()
}

func (t *WebSocket) dial() {
	target, err := t.dialURL()
	if err != nil {
		t.failDial(err)
		return
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: t.opts.HandshakeTimeout,
	}

	conn, _, err := dialer.Dial(target, nil)
	if err != nil {
		t.failDial(err)
		return
	}

	t.mu.Lock()
	select {
	case <-t.done:
		// Closed while the dial was in flight.
		t.mu.Unlock()
		conn.Close()
		return
	default:
	}
	t.conn = conn
	t.state = Open
	t.mu.Unlock()

	t.logger.Debug("transport open", "url", target)
	t.emit(Event{Name: EventOpen})

	t.readLoop(conn)
}

func (t *WebSocket) failDial(err error) {
	t.mu.Lock()
	t.state = Closed
	t.mu.Unlock()

	t.logger.Debug("transport dial failed", "url", t.url, "error", err)
	t.emit(Event{Name: EventError, Err: &Error{Op: "dial", Err: err}})
}

// dialURL inserts the endpoint path into the connection URL.
func (t *WebSocket) dialURL() (string, error) {
	u, err := url.Parse(t.url)
	if err != nil {
		return "", &Error{Op: "dial", Err: err}
	}
	u.Path = t.opts.Path
	return u.String(), nil
}

func (t *WebSocket) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.finalize()
			return
		}
		t.emit(Event{Name: EventMessage, Data: data})
	}
}

// finalize marks the transport closed and delivers the terminal close
// event exactly once.
func (t *WebSocket) finalize() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.state = Closed
		t.mu.Unlock()
		t.emit(Event{Name: EventClose})
	})
}

// Send writes one payload to the connection.
func (t *WebSocket) Send(data []byte) error {
	t.mu.Lock()
	conn := t.conn
	open := t.state == Open
	t.mu.Unlock()

	if !open || conn == nil {
		return ErrNotOpen
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(t.opts.WriteTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return &Error{Op: "write", Err: err}
	}
	return nil
}

// Close tears the connection down. The read loop delivers the terminal
// close event; if the transport never opened, it is delivered here.
func (t *WebSocket) Close() error {
	t.mu.Lock()
	if t.state == Closed || t.state == Closing {
		t.mu.Unlock()
		return nil
	}
	t.state = Closing
	conn := t.conn
	select {
	case <-t.done:
	default:
		close(t.done)
	}
	t.mu.Unlock()

	if conn == nil {
		t.finalize()
		return nil
	}

	conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return conn.Close()
}

// ReadyState returns the current lifecycle state.
func (t *WebSocket) ReadyState() ReadyState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
