package recording

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLogRecordsDeltas(t *testing.T) {
	clock := newFakeClock()
	log := NewLog(WithClock(clock.Now))

	gaps := []time.Duration{15 * time.Millisecond, 0, 250 * time.Millisecond, time.Second}
	for i, gap := range gaps {
		clock.Advance(gap)
		if err := log.Push([]byte{144, byte(60 + i), 100}); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}

	take := log.Finalize()
	if take.Len() != len(gaps) {
		t.Fatalf("got %d entries, want %d", take.Len(), len(gaps))
	}
	for i, e := range take.Entries() {
		if e.Delay != gaps[i] {
			t.Errorf("entry %d delay = %v, want %v", i, e.Delay, gaps[i])
		}
		if e.Message[1] != byte(60+i) {
			t.Errorf("entry %d key = %d, want %d", i, e.Message[1], 60+i)
		}
	}
	if got, want := take.Duration(), 1265*time.Millisecond; got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestLogCopiesMessages(t *testing.T) {
	log := NewLog()
	buf := []byte{144, 60, 100}
	if err := log.Push(buf); err != nil {
		t.Fatalf("Push: %v", err)
	}
	buf[1] = 99

	take := log.Finalize()
	if got := take.Messages()[0][1]; got != 60 {
		t.Errorf("recorded key = %d, want 60", got)
	}

	take.Entries()[0].Message[1] = 42
	if got := take.Messages()[0][1]; got != 60 {
		t.Errorf("Take was mutated through Entries(): key = %d", got)
	}
}

func TestLogRejectsPushAfterFinalize(t *testing.T) {
	log := NewLog()
	_ = log.Push([]byte{144, 60, 1})
	first := log.Finalize()

	if err := log.Push([]byte{128, 60, 0}); !errors.Is(err, ErrLogFinalized) {
		t.Fatalf("Push after Finalize error = %v, want ErrLogFinalized", err)
	}
	if second := log.Finalize(); second != first {
		t.Error("Finalize is not idempotent")
	}
	if first.Len() != 1 {
		t.Errorf("take has %d entries, want 1", first.Len())
	}
}

func TestLogConcurrentPushKeepsEverything(t *testing.T) {
	log := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = log.Push([]byte{144, 60, 1})
			}
		}()
	}
	wg.Wait()
	if got := log.Len(); got != 800 {
		t.Errorf("Len() = %d, want 800", got)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore()
	a := NewTake([]Entry{{Message: []byte{144, 60, 1}}})
	b := NewTake([]Entry{{Message: []byte{144, 61, 1}}, {Message: []byte{128, 61, 0}}})

	store.Put("First recording", a)
	store.Put("First recording", b)
	store.Put("another", a)

	got, ok := store.Get("First recording")
	if !ok || got != b {
		t.Fatalf("Get returned %v, %v; want the second take", got, ok)
	}
	if names := store.Names(); len(names) != 2 || names[0] != "First recording" || names[1] != "another" {
		t.Errorf("Names() = %v", names)
	}
	if !store.Delete("another") || store.Delete("another") {
		t.Error("Delete should report presence exactly once")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
	if _, ok := store.Get("missing"); ok {
		t.Error("Get(missing) reported a take")
	}
}
