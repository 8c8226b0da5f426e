// Package rest is the stateless HTTP fallback channel companion to the
// socket link. It derives its base URL from the same host and secure
// flag as the connection and authenticates with the same credentials,
// sent as request headers. No retries happen at this layer.
package rest
