package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
// Credential presence is checked by the connection constructor, not
// here: a callback credential cannot come from a file.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required")
	}
	if strings.Contains(c.Host, "://") {
		return fmt.Errorf("host must not carry a scheme, got %q", c.Host)
	}

	if c.Path != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path must start with '/', got %q", c.Path)
	}

	for _, t := range c.Transports {
		switch t {
		case TransportWebsocket, TransportPolling:
		default:
			return fmt.Errorf("unrecognized transport %q", t)
		}
	}

	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must be >= 0")
	}
	if c.RetriesAmount < 0 {
		return errors.New("retries_amount must be >= 0")
	}

	return nil
}
