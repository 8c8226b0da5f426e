package transport

import "log/slog"

// New returns a transport for the first supported entry in the ordered
// capability list. Polling is recognized but not implemented, so it is
// skipped; an empty list defaults to websocket.
func New(rawurl string, opts Options, logger *slog.Logger) (Transport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	names := opts.Transports
	if len(names) == 0 {
		names = []string{"websocket"}
	}

	for _, name := range names {
		switch name {
		case "websocket":
			return NewWebSocket(rawurl, opts, logger), nil
		case "polling":
			logger.Debug("polling transport not supported, skipping")
		default:
			logger.Warn("unknown transport in capability list", "transport", name)
		}
	}

	return nil, ErrNoTransport
}
