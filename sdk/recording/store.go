package recording

import (
	"sort"
	"sync"
)

// Store keeps finalized takes by name for the lifetime of the process.
type Store struct {
	mu    sync.RWMutex
	takes map[string]*Take
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{takes: make(map[string]*Take)}
}

// Put stores take under name, replacing any previous take with that name.
func (s *Store) Put(name string, take *Take) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.takes[name] = take
}

// Get returns the take stored under name.
func (s *Store) Get(name string) (*Take, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	take, ok := s.takes[name]
	return take, ok
}

// Delete removes name and reports whether it was present.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.takes[name]
	delete(s.takes, name)
	return ok
}

// Names returns the stored names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.takes))
	for name := range s.takes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored takes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.takes)
}
