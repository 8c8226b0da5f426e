package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hublink/hublink-go/internal/auth"
	"github.com/hublink/hublink-go/internal/config"
)

// Client issues authenticated requests against the companion REST
// endpoint.
type Client struct {
	secure     bool
	host       string
	creds      auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a REST client for the given host.
func NewClient(secure bool, host string, creds auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		secure: secure,
		host:   host,
		creds:  creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewFromConfig creates a REST client sharing the connection's host and
// credentials.
func NewFromConfig(cfg *config.Config, opts ...ClientOption) *Client {
	return NewClient(cfg.Secure, cfg.Host, cfg.Credentials(), opts...)
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
