package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/leandrodaf/pianorec/internal/logger"
	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/piano"
	"github.com/leandrodaf/pianorec/sdk/recording"
	"go.uber.org/multierr"
)

// State is the controller's lifecycle state.
type State int32

const (
	Idle State = iota
	Listening
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Listening:
		return "Listening"
	case Recording:
		return "Recording"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Controller owns at most one capture session at a time and mediates its
// start and stop. All methods are safe for concurrent use; lifecycle calls
// are serialized.
type Controller struct {
	mu        sync.Mutex // guards current and serializes lifecycle transitions
	current   *session
	state     atomic.Int32
	deliverMu sync.Mutex

	input          contracts.InputConnector
	handler        piano.Handler
	store          *recording.Store
	player         *recording.Player
	logger         contracts.Logger
	joinTimeout    time.Duration
	dispatchBuffer int
	now            func() time.Time
}

// NewController returns an Idle controller that captures from input and
// delivers every decode result to handler. handler is never called
// concurrently, and a session detached after a join timeout stops calling it.
func NewController(input contracts.InputConnector, handler piano.Handler, opts ...Option) *Controller {
	c := &Controller{
		input:          input,
		handler:        handler,
		joinTimeout:    DefaultJoinTimeout,
		dispatchBuffer: DefaultDispatchBuffer,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.NewZapLogger()
	}
	if c.handler == nil {
		c.handler = func(piano.Result) {}
	}
	if c.store == nil {
		c.store = recording.NewStore()
	}
	if c.player == nil {
		c.player = recording.NewPlayer(recording.WithPlayerLogger(c.logger))
	}
	if c.dispatchBuffer < 1 {
		c.dispatchBuffer = 1
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Status reports whether a capture session is active.
func (c *Controller) Status() bool {
	return c.State() != Idle
}

// Recordings returns the store finished recordings are saved to.
func (c *Controller) Recordings() *recording.Store {
	return c.store
}

// StartListen starts a session that decodes without recording. It fails
// with ErrSessionActive, leaving the running session alone, unless Idle.
func (c *Controller) StartListen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.logger.Warn("Already listening", c.logger.Field().String("session", c.current.id))
		return ErrSessionActive
	}
	return c.start(false)
}

// StartRecord starts a recording session, killing whatever session is
// running first.
func (c *Controller) StartRecord() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var killErr error
	if c.current != nil {
		if _, killErr = c.shutdown("kill"); killErr != nil {
			c.logger.Warn("Previous session did not stop cleanly", c.logger.Field().Error("error", killErr))
		}
	}
	if err := c.start(true); err != nil {
		return multierr.Append(err, killErr)
	}
	return nil
}

// Stop ends a recording session and stores its take under name, replacing
// any take already stored there. Stopping a listening session ends it and
// returns ErrNotRecording.
func (c *Controller) Stop(name string) (*recording.Take, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil, ErrNoSession
	}
	wasRecording := c.current.recording()

	take, err := c.shutdown("stop")
	if !wasRecording {
		return nil, multierr.Append(ErrNotRecording, err)
	}
	if take != nil {
		c.store.Put(name, take)
		c.logger.Info("Recording stored",
			c.logger.Field().String("name", name),
			c.logger.Field().Int("messages", take.Len()),
			c.logger.Field().Duration("duration", take.Duration()))
	}
	return take, err
}

// Kill ends the active session and discards any partial recording. It is a
// no-op when Idle.
func (c *Controller) Kill() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return nil
	}
	_, err := c.shutdown("kill")
	return err
}

// Close kills the active session.
func (c *Controller) Close() error {
	return c.Kill()
}

// Play replays the take stored under name through a freshly acquired output
// and blocks until playback completes.
func (c *Controller) Play(ctx context.Context, name string, output contracts.OutputConnector) error {
	take, ok := c.store.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrRecordingNotFound, name)
	}

	sink, err := output.ConnectOutput()
	if err != nil {
		return hardwareError("connect output", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.player.Play(ctx, take, sink)
	}()
	return <-errCh
}

// start acquires the hardware and spawns the capture goroutines. c.mu must
// be held and no session may be current.
func (c *Controller) start(record bool) error {
	var log *recording.Log
	if record {
		log = recording.NewLog(recording.WithClock(c.now))
	}
	s := newSession(uuid.NewString(), log, c.dispatchBuffer, &c.deliverMu, c.logger)

	conn, err := c.input.Connect(s.onMessage)
	if err != nil {
		c.logger.Error("Failed to connect to piano", c.logger.Field().Error("error", err))
		return hardwareError("connect input", err)
	}
	s.conn = conn

	go s.dispatchLoop(c.handler)
	go s.run()

	c.current = s
	state := Listening
	if record {
		state = Recording
	}
	c.state.Store(int32(state))

	c.logger.Info("Capture session started",
		c.logger.Field().String("session", s.id),
		c.logger.Field().String("state", state.String()))
	return nil
}

// shutdown cancels the current session and waits up to joinTimeout for it
// to exit. The slot is released whatever the outcome. c.mu must be held.
func (c *Controller) shutdown(op string) (*recording.Take, error) {
	s := c.current
	c.current = nil
	defer c.state.Store(int32(Idle))

	s.requestStop()

	timer := time.NewTimer(c.joinTimeout)
	defer timer.Stop()

	select {
	case out := <-s.done:
		c.logger.Info("Capture session ended",
			c.logger.Field().String("session", s.id),
			c.logger.Field().String("op", op))
		if out.err != nil {
			return out.take, &SessionError{Op: op, SessionID: s.id, Err: fmt.Errorf("%w: %w", ErrSessionJoin, out.err)}
		}
		return out.take, nil
	case <-timer.C:
		s.detach()
		c.logger.Error("Capture session did not exit in time; detaching it",
			c.logger.Field().String("session", s.id),
			c.logger.Field().Duration("timeout", c.joinTimeout))
		return nil, &SessionError{Op: op, SessionID: s.id, Err: ErrJoinTimeout}
	}
}

func hardwareError(op string, err error) error {
	if errors.Is(err, contracts.ErrHardwareUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, contracts.ErrHardwareUnavailable, err)
}
