// Package auth resolves the credential used to authorize a socket link.
//
// A connection is authorized when it holds a shared secret, an access
// token, or both. Either may be supplied directly in configuration, or a
// token may be produced asynchronously by a caller-supplied Callback
// before the first connection attempt.
package auth

import (
	"context"
	"errors"
)

// ErrEmptyToken is returned when a Callback succeeds but its result
// yields no usable token.
var ErrEmptyToken = errors.New("auth callback returned no token")

// Credentials authorize a connection. At least one field must be set.
type Credentials struct {
	Secret string
	Token  string
}

// HasAuth reports whether the credentials can authorize a connection.
func (c Credentials) HasAuth() bool {
	return c.Secret != "" || c.Token != ""
}

// Payload is a structured Callback result carrying a token.
type Payload struct {
	Token string `json:"token"`
}

// Callback produces an access token asynchronously. The result may be a
// bare token string, a Payload, or a map with a "token" entry; TokenFrom
// handles the extraction.
type Callback func(ctx context.Context) (any, error)

// TokenFrom extracts a token from a Callback result. The second return
// is false when the result carries no usable token.
func TokenFrom(result any) (string, bool) {
	switch v := result.(type) {
	case string:
		return v, v != ""
	case Payload:
		return v.Token, v.Token != ""
	case *Payload:
		if v == nil {
			return "", false
		}
		return v.Token, v.Token != ""
	case map[string]any:
		token, _ := v["token"].(string)
		return token, token != ""
	}
	return "", false
}
