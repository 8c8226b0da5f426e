package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hublink/hublink-go/internal/auth"
	"github.com/hublink/hublink-go/internal/config"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		secure  bool
		host    string
		postfix string
		want    string
	}{
		{"plain", false, "localhost:8081", "", "http://localhost:8081"},
		{"secure", true, "hub.example.com", "", "https://hub.example.com"},
		{"with path", false, "localhost:8081", "/status", "http://localhost:8081/status"},
		{"path without slash", false, "localhost:8081", "status", "http://localhost:8081/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BaseURL(tt.secure, tt.host, tt.postfix); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetSendsCredentialHeaders(t *testing.T) {
	var gotSecret, gotToken, gotReqID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("secret")
		gotToken = r.Header.Get("token")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	client := NewClient(false, host, auth.Credentials{Secret: "s3cr3t", Token: "tok"})

	body, err := client.Get(context.Background(), "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q, want %q", body, `{"ok":true}`)
	}
	if gotSecret != "s3cr3t" {
		t.Errorf("secret header = %q, want %q", gotSecret, "s3cr3t")
	}
	if gotToken != "tok" {
		t.Errorf("token header = %q, want %q", gotToken, "tok")
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestGetOmitsAbsentCredentials(t *testing.T) {
	var hasSecret, hasToken bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSecret = r.Header[http.CanonicalHeaderKey("secret")]
		_, hasToken = r.Header[http.CanonicalHeaderKey("token")]
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	client := NewClient(false, host, auth.Credentials{Token: "only-token"})

	if _, err := client.Get(context.Background(), ""); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if hasSecret {
		t.Error("secret header sent despite empty secret")
	}
	if !hasToken {
		t.Error("token header missing")
	}
}

func TestGetNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("no way"))
	}))
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	client := NewClient(false, host, auth.Credentials{Token: "t"})

	_, err := client.Get(context.Background(), "/denied")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want %d", reqErr.StatusCode, http.StatusForbidden)
	}
	if string(reqErr.Body) != "no way" {
		t.Errorf("Body = %q, want %q", reqErr.Body, "no way")
	}
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/status")
		}
		w.Write([]byte(`{"uptime": 42}`))
	}))
	defer server.Close()

	host := strings.TrimPrefix(server.URL, "http://")
	client := NewClient(false, host, auth.Credentials{Token: "t"})

	var result struct {
		Uptime int `json:"uptime"`
	}
	if err := client.GetJSON(context.Background(), "/status", &result); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if result.Uptime != 42 {
		t.Errorf("Uptime = %d, want 42", result.Uptime)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{Host: "example.com", Secure: true, Token: "tok"}
	client := NewFromConfig(cfg)

	if client.host != "example.com" || !client.secure {
		t.Errorf("client host/secure = %q/%v, want example.com/true", client.host, client.secure)
	}
	if client.creds.Token != "tok" {
		t.Errorf("creds.Token = %q, want %q", client.creds.Token, "tok")
	}
}
