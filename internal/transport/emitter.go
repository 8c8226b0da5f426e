package transport

import "sync"

// emitter is a minimal per-event listener registry shared by transport
// implementations. Emission snapshots the listener list, so a listener
// may detach itself (or others) during delivery.
type emitter struct {
	mu        sync.Mutex
	listeners map[string][]registration
}

type registration struct {
	fn   Listener
	once bool
}

func (e *emitter) On(event string, fn Listener) {
	e.add(event, fn, false)
}

func (e *emitter) Once(event string, fn Listener) {
	e.add(event, fn, true)
}

func (e *emitter) add(event string, fn Listener, once bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]registration)
	}
	e.listeners[event] = append(e.listeners[event], registration{fn: fn, once: once})
}

func (e *emitter) RemoveAllListeners(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, event)
}

func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	regs := e.listeners[ev.Name]
	if len(regs) == 0 {
		e.mu.Unlock()
		return
	}
	fns := make([]Listener, 0, len(regs))
	kept := regs[:0]
	for _, r := range regs {
		fns = append(fns, r.fn)
		if !r.once {
			kept = append(kept, r)
		}
	}
	e.listeners[ev.Name] = kept
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
