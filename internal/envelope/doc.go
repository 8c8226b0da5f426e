// Package envelope implements the wire codec for application-level
// messages exchanged over the socket link.
//
// An envelope is a flat JSON object with two reserved keys: "reqId"
// correlates a server response with an outstanding request, and "action"
// names a server-initiated operation. The single reserved action is
// "connected", the session handshake. All other fields pass through
// untouched.
package envelope
