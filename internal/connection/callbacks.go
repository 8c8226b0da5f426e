package connection

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hublink/hublink-go/internal/envelope"
)

// callRegistry maps outstanding request identifiers to pending
// completion handlers. Each entry completes exactly once: on a matching
// response, on an explicit error, or when its timer fires.
type callRegistry struct {
	mu      sync.Mutex
	pending map[string]*pendingCall
}

type pendingCall struct {
	handler Callback
	timer   *time.Timer
}

func newCallRegistry() *callRegistry {
	return &callRegistry{pending: make(map[string]*pendingCall)}
}

// add stores a pending call and arms its timeout. A second add for the
// same id before the first completes is a programming error.
func (r *callRegistry) add(id string, handler Callback, timeout time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pending[id]; exists {
		return ErrDuplicateRequest
	}

	call := &pendingCall{handler: handler}
	call.timer = time.AfterFunc(timeout, func() {
		r.exec(id, ErrRequestTimeout, nil)
	})
	r.pending[id] = call
	return nil
}

// exec completes the pending call for id. Unknown ids are a benign
// no-op, which makes duplicate and stale completions safe. The timer
// cancel and entry removal happen atomically with the lookup, so the
// handler cannot run twice.
func (r *callRegistry) exec(id string, err error, env envelope.Envelope) bool {
	r.mu.Lock()
	call, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
		call.timer.Stop()
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	call.handler(err, env)
	return true
}

// drop removes a pending call without invoking its handler. Used when a
// send fails after registration.
func (r *callRegistry) drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if call, ok := r.pending[id]; ok {
		call.timer.Stop()
		delete(r.pending, id)
	}
}

func (r *callRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

const (
	requestIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	requestIDLength   = 24
)

// newRequestID generates a request identifier: 24 random alphanumeric
// characters suffixed with the connection identifier, scoping ids to the
// session. A placeholder stands in before the handshake assigns one.
func newRequestID(connectionID string) string {
	b := make([]byte, requestIDLength)
	for i := range b {
		b[i] = requestIDAlphabet[rand.IntN(len(requestIDAlphabet))]
	}
	if connectionID == "" {
		connectionID = "0"
	}
	return string(b) + connectionID
}
