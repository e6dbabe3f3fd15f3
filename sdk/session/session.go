package session

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"github.com/leandrodaf/pianorec/sdk/piano"
	"github.com/leandrodaf/pianorec/sdk/recording"
)

// outcome is what a capture goroutine hands back when it exits.
type outcome struct {
	take *recording.Take
	err  error
}

// session is one live capture: a hardware connection, the goroutine waiting
// for cancellation, and the dispatcher feeding the handler.
type session struct {
	id     string
	logger contracts.Logger
	log    *recording.Log // nil unless recording

	conn       contracts.Connection
	cancel     chan struct{} // single capacity, sent to once
	done       chan outcome  // single capacity
	dispatch   chan piano.Result
	drain      chan struct{}
	dispatched chan struct{}

	deliverMu *sync.Mutex // shared by every session of a controller
	detached  atomic.Bool
}

func newSession(id string, log *recording.Log, buffer int, deliverMu *sync.Mutex, logger contracts.Logger) *session {
	return &session{
		id:         id,
		logger:     logger,
		log:        log,
		deliverMu:  deliverMu,
		cancel:     make(chan struct{}, 1),
		done:       make(chan outcome, 1),
		dispatch:   make(chan piano.Result, buffer),
		drain:      make(chan struct{}),
		dispatched: make(chan struct{}),
	}
}

func (s *session) recording() bool {
	return s.log != nil
}

// onMessage runs on the driver's thread and must not block.
func (s *session) onMessage(msg []byte) {
	if s.log != nil {
		if err := s.log.Push(msg); err != nil {
			s.logger.Debug("Message arrived after recording was finalized",
				s.logger.Field().String("session", s.id),
				s.logger.Field().Binary("message", msg))
		}
	}

	select {
	case s.dispatch <- piano.DecodeResult(msg):
	default:
		s.logger.Warn("Dispatch buffer full; dropping piano event",
			s.logger.Field().String("session", s.id),
			s.logger.Field().Binary("message", msg))
	}
}

// dispatchLoop delivers results to handler in arrival order until drain is
// closed and the queue is empty.
func (s *session) dispatchLoop(handler piano.Handler) {
	defer close(s.dispatched)
	for {
		select {
		case res := <-s.dispatch:
			s.deliver(handler, res)
		case <-s.drain:
			for {
				select {
				case res := <-s.dispatch:
					s.deliver(handler, res)
				default:
					return
				}
			}
		}
	}
}

// deliver calls handler unless the session was detached. Calls from all
// sessions of a controller are serialized.
func (s *session) deliver(handler piano.Handler, res piano.Result) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if s.detached.Load() {
		s.logger.Debug("Dropping piano event from detached session",
			s.logger.Field().String("session", s.id),
			s.logger.Field().Binary("message", res.Raw))
		return
	}
	if res.Err != nil {
		s.logger.Warn("Failed to decode piano message",
			s.logger.Field().String("session", s.id),
			s.logger.Field().Binary("message", res.Raw),
			s.logger.Field().Error("error", res.Err))
	}
	handler(res)
}

// run blocks until cancelled, then tears the connection down and reports
// the finished recording on done.
func (s *session) run() {
	<-s.cancel

	s.logger.Info("Closing piano connection", s.logger.Field().String("session", s.id))

	var err error
	if cerr := s.conn.Close(); cerr != nil {
		err = fmt.Errorf("close input: %w", cerr)
	}
	close(s.drain)
	<-s.dispatched

	var take *recording.Take
	if s.log != nil {
		take = s.log.Finalize()
	}
	s.done <- outcome{take: take, err: err}
}

// detach stops any further handler calls from this session.
func (s *session) detach() {
	s.detached.Store(true)
}

// requestStop sends the cancellation signal. Extra calls are no-ops.
func (s *session) requestStop() {
	select {
	case s.cancel <- struct{}{}:
	default:
	}
}
