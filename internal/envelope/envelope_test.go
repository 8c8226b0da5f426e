package envelope

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`{"reqId":"r1","action":"connected","clientId":"c1","connectionId":"k9","payload":42}`)

	env, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := env.ReqID(); got != "r1" {
		t.Errorf("ReqID() = %q, want %q", got, "r1")
	}
	if got := env.Action(); got != "connected" {
		t.Errorf("Action() = %q, want %q", got, "connected")
	}
	if got := env.ClientID(); got != "c1" {
		t.Errorf("ClientID() = %q, want %q", got, "c1")
	}
	if got := env.ConnectionID(); got != "k9" {
		t.Errorf("ConnectionID() = %q, want %q", got, "k9")
	}
	if _, ok := env["payload"]; !ok {
		t.Error("expected payload field to pass through")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestConnectionIDLegacyField(t *testing.T) {
	env, err := Parse([]byte(`{"action":"connected","connection_id":"legacy7"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := env.ConnectionID(); got != "legacy7" {
		t.Errorf("ConnectionID() = %q, want %q", got, "legacy7")
	}
}

func TestConnectionIDPrimaryWins(t *testing.T) {
	env := Envelope{"connectionId": "new", "connection_id": "old"}
	if got := env.ConnectionID(); got != "new" {
		t.Errorf("ConnectionID() = %q, want %q", got, "new")
	}
}

func TestEncode(t *testing.T) {
	env := Envelope{"action": "ping"}
	env.SetReqID("abc123")

	data, err := env.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("encoded envelope is not valid JSON: %v", err)
	}
	if decoded["reqId"] != "abc123" {
		t.Errorf("reqId = %v, want %q", decoded["reqId"], "abc123")
	}
	if decoded["action"] != "ping" {
		t.Errorf("action = %v, want %q", decoded["action"], "ping")
	}
}

func TestMissingFieldsAreEmpty(t *testing.T) {
	env := Envelope{"data": map[string]any{"x": 1}}
	if env.ReqID() != "" || env.Action() != "" || env.Token() != "" {
		t.Error("expected reserved accessors to be empty for plain envelope")
	}
}
