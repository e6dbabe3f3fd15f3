package session

import (
	"time"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/recording"
)

const (
	// DefaultJoinTimeout bounds how long Stop and Kill wait for the capture
	// goroutine before detaching it.
	DefaultJoinTimeout = 2 * time.Second
	// DefaultDispatchBuffer is the number of decoded results queued between
	// the driver callback and the handler.
	DefaultDispatchBuffer = 256
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l contracts.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithStore sets the store finished recordings are saved to.
func WithStore(s *recording.Store) Option {
	return func(c *Controller) {
		c.store = s
	}
}

// WithPlayer sets the player used by Play.
func WithPlayer(p *recording.Player) Option {
	return func(c *Controller) {
		c.player = p
	}
}

// WithJoinTimeout overrides DefaultJoinTimeout.
func WithJoinTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.joinTimeout = d
	}
}

// WithDispatchBuffer overrides DefaultDispatchBuffer.
func WithDispatchBuffer(n int) Option {
	return func(c *Controller) {
		c.dispatchBuffer = n
	}
}

// WithClock replaces the clock recordings use to timestamp messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}
