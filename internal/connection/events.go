package connection

import "sync"

// emitter dispatches connection events to registered listeners.
// Delivery snapshots the listener slice so handlers may register or
// remove listeners from within a callback.
type emitter struct {
	mu        sync.Mutex
	listeners map[string][]Listener
}

// On registers a listener for the named event.
func (e *emitter) On(event string, fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[event] = append(e.listeners[event], fn)
}

// RemoveAllListeners drops every listener for the named event.
func (e *emitter) RemoveAllListeners(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, event)
}

func (e *emitter) emit(event string, ev Event) {
	e.mu.Lock()
	fns := make([]Listener, len(e.listeners[event]))
	copy(fns, e.listeners[event])
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
