package connection

import "time"

// scheduleReconnectLocked arms the retry timer for the current
// disconnect episode. Caller holds c.mu. At most one timer is scheduled
// at a time; rearming replaces any pending one. Once the ceiling is
// reached nothing more is scheduled until a manual Connect or a new
// episode resets context.
func (c *Conn) scheduleReconnectLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
	if c.retries >= c.cfg.RetriesAmount {
		c.logger.Warn("reconnect retries exhausted",
			"retries", c.retries,
			"max", c.cfg.RetriesAmount,
		)
		return
	}
	c.retryTimer = time.AfterFunc(reconnectInterval, c.retryFire)
}

// retryFire runs when the retry timer elapses. Manual Connect calls are
// independent of this path and never consume retry budget.
func (c *Conn) retryFire() {
	c.mu.Lock()
	c.retryTimer = nil

	if !c.cfg.Reconnect() || c.retries >= c.cfg.RetriesAmount {
		c.mu.Unlock()
		return
	}

	switch c.state {
	case StateConnected:
		// The link recovered on its own; the episode is over.
		c.retries = 0
		c.mu.Unlock()
		return
	case StateConnecting, StateClosing, StateClosed:
		c.mu.Unlock()
		return
	}

	c.retries++
	attempt := c.retries
	c.mu.Unlock()

	c.logger.Info("reconnecting",
		"attempt", attempt,
		"max", c.cfg.RetriesAmount,
	)
	c.Connect()
}
