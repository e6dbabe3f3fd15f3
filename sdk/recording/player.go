package recording

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
	"go.uber.org/multierr"
)

// DefaultTrailingDelay is how long the player waits after the last message
// before closing the sink, so the device can finish sounding.
const DefaultTrailingDelay = 150 * time.Millisecond

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Player replays takes with their original pacing.
type Player struct {
	logger        contracts.Logger
	trailingDelay time.Duration
	sleep         Sleeper
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithPlayerLogger sets the player's logger.
func WithPlayerLogger(l contracts.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = l
	}
}

// WithTrailingDelay overrides DefaultTrailingDelay.
func WithTrailingDelay(d time.Duration) PlayerOption {
	return func(p *Player) {
		p.trailingDelay = d
	}
}

// WithSleeper replaces the timer based wait.
func WithSleeper(s Sleeper) PlayerOption {
	return func(p *Player) {
		p.sleep = s
	}
}

// NewPlayer returns a Player with the given options applied.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{trailingDelay: DefaultTrailingDelay, sleep: sleepContext}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.NewZapLogger()
	}
	return p
}

// Play waits each entry's delay and writes its bytes unchanged to sink, then
// waits the trailing delay and closes sink. It blocks for the whole replay.
// A failed send is logged and playback carries on; all send failures are
// returned together with any close error. Cancelling ctx stops the replay.
func (p *Player) Play(ctx context.Context, take *Take, sink contracts.MessageSink) (err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("close output: %w", cerr))
		}
	}()

	p.logger.Info("Starting playback",
		p.logger.Field().Int("messages", take.Len()),
		p.logger.Field().Duration("duration", take.Duration()))

	var sendErrs error
	for i, entry := range take.entries {
		if err := p.sleep(ctx, entry.Delay); err != nil {
			p.logger.Warn("Playback cancelled", p.logger.Field().Int("played", i))
			return multierr.Append(sendErrs, err)
		}
		if err := sink.Send(append([]byte(nil), entry.Message...)); err != nil {
			p.logger.Warn("Failed to send recorded message",
				p.logger.Field().Int("index", i),
				p.logger.Field().Binary("message", entry.Message),
				p.logger.Field().Error("error", err))
			sendErrs = multierr.Append(sendErrs, fmt.Errorf("send message %d: %w", i, err))
		}
	}

	if err := p.sleep(ctx, p.trailingDelay); err != nil {
		return multierr.Append(sendErrs, err)
	}

	p.logger.Info("Playback finished")
	return sendErrs
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
