package query

import "sync"

// Store holds exactly one State. Replace is the only way to change it.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store holding initial.
func NewStore(initial State) *Store {
	return &Store{state: initial.Clone()}
}

// Current returns a copy of the held state.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps the held state for next.
func (s *Store) Replace(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next.Clone()
}
