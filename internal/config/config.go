// Package config defines the typed connection configuration, its
// defaults, validation, and the YAML loader.
package config

import (
	"time"

	"github.com/hublink/hublink-go/internal/auth"
)

// Config holds every recognized connection option. Fields left at their
// zero value are filled in by applyDefaults; unrecognized YAML keys are
// rejected at load time.
type Config struct {
	// Host is the server authority ("host:port", no scheme).
	Host string `yaml:"host"`

	// Secure selects wss/https instead of ws/http.
	Secure bool `yaml:"secure"`

	// ClientID is the caller-supplied client identifier. When empty the
	// server assigns one on handshake.
	ClientID string `yaml:"client_id"`

	// Secret is a shared secret credential.
	Secret string `yaml:"secret"`

	// Token is a pre-supplied access token credential.
	Token string `yaml:"token"`

	// AuthCallback asynchronously produces a token before the first
	// connection attempt. Programmatic only; never read from YAML.
	AuthCallback auth.Callback `yaml:"-"`

	// Path is the transport endpoint path.
	Path string `yaml:"path"`

	// Transports is the ordered transport capability list.
	Transports []string `yaml:"transports"`

	// RequestTimeout bounds each correlated request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// RetriesAmount caps automatic reconnection attempts per disconnect
	// episode.
	RetriesAmount int `yaml:"retries_amount"`

	// AutoReconnect enables the reconnection policy. Tri-state so YAML
	// can set it to false; nil means the default (true).
	AutoReconnect *bool `yaml:"auto_reconnect"`

	// NoAutoConnect suppresses the implicit connect at construction.
	NoAutoConnect bool `yaml:"no_auto_connect"`
}

// Reconnect reports whether automatic reconnection is enabled.
func (c *Config) Reconnect() bool {
	return c.AutoReconnect == nil || *c.AutoReconnect
}

// Credentials returns the directly supplied credential fields.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{Secret: c.Secret, Token: c.Token}
}

// HasCredentialSource reports whether any credential source is present:
// a secret, a token, or an auth callback.
func (c *Config) HasCredentialSource() bool {
	return c.Secret != "" || c.Token != "" || c.AuthCallback != nil
}
