package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost           = "localhost:8081"
	DefaultPath           = "/ws"
	DefaultRequestTimeout = 25 * time.Second
	DefaultRetriesAmount  = 7
)

// DefaultTransports is the ordered transport capability list used when
// none is configured.
func DefaultTransports() []string {
	return []string{TransportWebsocket, TransportPolling}
}

// Recognized transport names.
const (
	TransportWebsocket = "websocket"
	TransportPolling   = "polling"
)

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if len(c.Transports) == 0 {
		c.Transports = DefaultTransports()
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.RetriesAmount == 0 {
		c.RetriesAmount = DefaultRetriesAmount
	}
	if c.AutoReconnect == nil {
		enabled := true
		c.AutoReconnect = &enabled
	}
}

// ApplyDefaults fills zero-valued fields in place. Exposed for callers
// that build a Config programmatically instead of loading a file.
func (c *Config) ApplyDefaults() {
	c.applyDefaults()
}
