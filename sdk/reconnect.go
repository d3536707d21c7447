package sdk

import (
	"errors"
	"math/rand"
	"time"
)

var (
	// ErrNotConnected is returned when sending without a live connection
	ErrNotConnected = errors.New("not connected")

	// ErrReconnectFailed is returned when every reconnect attempt failed
	ErrReconnectFailed = errors.New("reconnect failed after all attempts")
)

// ReconnectPolicy bounds the retry loop: exponential backoff from BaseDelay,
// capped at MaxDelay, with proportional jitter to avoid thundering herds.
type ReconnectPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      float64
}

// DefaultReconnectPolicy returns the policy clients use unless overridden:
// five attempts starting at one second, doubling up to ten seconds.
func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
		Jitter:      0.2,
	}
}

// Delay returns the backoff before the given attempt (starting at 0)
func (p ReconnectPolicy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			d = p.MaxDelay
			break
		}
	}
	if p.Jitter > 0 {
		spread := float64(d) * p.Jitter
		d += time.Duration((rand.Float64()*2 - 1) * spread)
	}
	return d
}

// Reconnect re-establishes the connection and resumes the session: the
// stored identity is re-presented so the server recognizes the player, and
// if the client was seated in a lobby it rejoins it, which for a running
// game restores the seat and the current table state.
func (c *WSClient) Reconnect(policy ReconnectPolicy) error {
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(policy.Delay(attempt - 1))
		}

		if err := c.Connect(); err != nil {
			lastErr = err
			c.logger.Warn("reconnect attempt failed", "attempt", attempt+1, "error", err)
			continue
		}

		if err := c.resumeSession(); err != nil {
			lastErr = err
			_ = c.Disconnect()
			continue
		}

		c.logger.Info("reconnected", "attempt", attempt+1)
		return nil
	}

	if lastErr != nil {
		return errors.Join(ErrReconnectFailed, lastErr)
	}
	return ErrReconnectFailed
}

// resumeSession replays the identity and lobby membership on a new socket
func (c *WSClient) resumeSession() error {
	c.mu.RLock()
	name := c.name
	avatar := c.avatar
	lobbyID := c.lobbyID
	c.mu.RUnlock()

	if name == "" {
		return nil
	}
	if err := c.JoinIdentity(name, avatar); err != nil {
		return err
	}
	if lobbyID != "" {
		return c.JoinLobby(lobbyID)
	}
	return nil
}
