// Package connection implements the client-side lifecycle of a
// persistent, message-oriented socket link.
//
// A Conn owns at most one live transport at a time and drives a single
// connection state machine from transport events: credential resolution,
// transport establishment, handshake adoption, failure detection, and a
// bounded fixed-interval reconnection loop. Correlated request/response
// traffic is multiplexed over the same link through a registry of
// pending calls with per-request timeouts.
//
// State transitions are surfaced as events, never as panics or thrown
// errors; a caller without listeners loses nothing but visibility.
package connection
