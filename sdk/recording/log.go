package recording

import (
	"errors"
	"sync"
	"time"
)

// ErrLogFinalized is returned by Push once the log has been handed off.
var ErrLogFinalized = errors.New("recording log is finalized")

// Entry is one recorded message and the time elapsed since the previous one.
type Entry struct {
	Delay   time.Duration
	Message []byte
}

// Log is an append-only, delta-timestamped record of raw messages. It is
// safe for concurrent use.
type Log struct {
	mu        sync.Mutex
	now       func() time.Time
	last      time.Time
	entries   []Entry
	finalized *Take
}

// LogOption configures a Log.
type LogOption func(*Log)

// WithClock replaces the wall clock used to measure delays.
func WithClock(now func() time.Time) LogOption {
	return func(l *Log) {
		l.now = now
	}
}

// NewLog returns an empty log whose clock starts now.
func NewLog(opts ...LogOption) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	l.last = l.now()
	return l
}

// Push appends a copy of raw with the delay since the previous push, or since
// the log was created.
func (l *Log) Push(raw []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized != nil {
		return ErrLogFinalized
	}

	now := l.now()
	l.entries = append(l.entries, Entry{
		Delay:   now.Sub(l.last),
		Message: append([]byte(nil), raw...),
	})
	l.last = now
	return nil
}

// Len returns the number of entries recorded so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Finalize freezes the log and returns its immutable Take. Later calls
// return the same Take.
func (l *Log) Finalize() *Take {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.finalized == nil {
		l.finalized = &Take{entries: l.entries}
		l.entries = nil
	}
	return l.finalized
}

// Take is a finalized recording.
type Take struct {
	entries []Entry
}

// NewTake builds a Take from entries, copying them.
func NewTake(entries []Entry) *Take {
	return &Take{entries: copyEntries(entries)}
}

// Len returns the number of recorded messages.
func (t *Take) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the recorded entries in arrival order.
func (t *Take) Entries() []Entry {
	return copyEntries(t.entries)
}

// Messages returns copies of the raw messages in arrival order.
func (t *Take) Messages() [][]byte {
	out := make([][]byte, len(t.entries))
	for i, e := range t.entries {
		out[i] = append([]byte(nil), e.Message...)
	}
	return out
}

// Duration is the sum of all delays, the time from the start of capture to
// the last message.
func (t *Take) Duration() time.Duration {
	var total time.Duration
	for _, e := range t.entries {
		total += e.Delay
	}
	return total
}

func copyEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Delay: e.Delay, Message: append([]byte(nil), e.Message...)}
	}
	return out
}
