package connection

import (
	"net/url"
	"strings"

	"github.com/hublink/hublink-go/internal/auth"
)

// BuildConnectURL assembles the connection URL:
//
//	<ws|wss>://<host>?connect=1[&secret=<s>][&access_token=<t>][&clientId=<c>]
//
// Parameter order is fixed, so the string is built by hand rather than
// through url.Values (which sorts keys).
func BuildConnectURL(secure bool, host string, creds auth.Credentials, clientID string) string {
	scheme := "ws"
	if secure {
		scheme = "wss"
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString("?connect=1")
	if creds.Secret != "" {
		b.WriteString("&secret=")
		b.WriteString(url.QueryEscape(creds.Secret))
	}
	if creds.Token != "" {
		b.WriteString("&access_token=")
		b.WriteString(url.QueryEscape(creds.Token))
	}
	if clientID != "" {
		b.WriteString("&clientId=")
		b.WriteString(url.QueryEscape(clientID))
	}
	return b.String()
}
