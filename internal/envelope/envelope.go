package envelope

import (
	"encoding/json"
	"fmt"
)

// Reserved envelope keys.
const (
	keyReqID        = "reqId"
	keyAction       = "action"
	keyClientID     = "clientId"
	keyConnectionID = "connectionId"
	// Older servers report the connection identifier under this key.
	keyConnectionIDLegacy = "connection_id"
	keyToken              = "token"
)

// ActionConnected is the reserved handshake action confirming session
// establishment and carrying identity fields.
const ActionConnected = "connected"

// Envelope is a decoded application-level message. Reserved fields are
// reached through the accessor methods; everything else is payload.
type Envelope map[string]any

// Parse decodes a raw transport payload into an Envelope.
func Parse(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse envelope: %w", err)
	}
	return e, nil
}

// Encode serializes the envelope into its wire representation.
func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}

// ReqID returns the request correlation identifier, if any.
func (e Envelope) ReqID() string { return e.str(keyReqID) }

// SetReqID stamps the request correlation identifier.
func (e Envelope) SetReqID(id string) { e[keyReqID] = id }

// Action returns the envelope action, if any.
func (e Envelope) Action() string { return e.str(keyAction) }

// SetAction stamps the envelope action.
func (e Envelope) SetAction(action string) { e[keyAction] = action }

// ClientID returns the server-assigned client identifier, if any.
func (e Envelope) ClientID() string { return e.str(keyClientID) }

// ConnectionID returns the server-assigned connection identifier.
// The legacy field name is consulted when the primary one is absent.
func (e Envelope) ConnectionID() string {
	if id := e.str(keyConnectionID); id != "" {
		return id
	}
	return e.str(keyConnectionIDLegacy)
}

// Token returns a refreshed access token, if the envelope carries one.
func (e Envelope) Token() string { return e.str(keyToken) }

func (e Envelope) str(key string) string {
	s, _ := e[key].(string)
	return s
}
