package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hublink/hublink-go/internal/version"
)

// RequestError represents a non-200 response from the REST endpoint.
type RequestError struct {
	StatusCode int
	Body       []byte
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("rest request failed with status %d: %s", e.StatusCode, e.Body)
}

// BaseURL builds the REST endpoint URL from the secure flag and host,
// optionally appended with a path.
func BaseURL(secure bool, host, postfix string) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}

	u := scheme + "://" + host
	if postfix != "" {
		if !strings.HasPrefix(postfix, "/") {
			u += "/"
		}
		u += postfix
	}
	return u
}

// Get issues one authenticated GET against the endpoint at postfix and
// returns the 200 response body. A non-200 response yields a
// *RequestError carrying the status and body.
func (c *Client) Get(ctx context.Context, postfix string) ([]byte, error) {
	fullURL := BaseURL(c.secure, c.host, postfix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds.Secret != "" {
		req.Header.Set("secret", c.creds.Secret)
	}
	if c.creds.Token != "" {
		req.Header.Set("token", c.creds.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("rest request failed",
			"url", fullURL,
			"status", resp.StatusCode,
		)
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	return body, nil
}

// GetJSON issues a GET and decodes the 200 response body into result.
func (c *Client) GetJSON(ctx context.Context, postfix string, result any) error {
	body, err := c.Get(ctx, postfix)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
