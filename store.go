package themecss

import "sync"

// Store holds the currently published Rules. Readers never block each other
// and the write lock is held only for the pointer swap, never while parsing.
type Store struct {
	mu    sync.RWMutex
	rules *Rules
}

// NewStore returns a store publishing rules, which may be nil.
func NewStore(rules *Rules) *Store {
	return &Store{rules: rules}
}

// Current returns the published Rules.
func (s *Store) Current() *Rules {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// Publish replaces the published Rules and returns the previous value.
// Publishing nil is ignored so that a failed reload cannot clear the store.
func (s *Store) Publish(rules *Rules) *Rules {
	if rules == nil {
		return s.Current()
	}
	s.mu.Lock()
	old := s.rules
	s.rules = rules
	s.mu.Unlock()
	return old
}

// Solve solves e against the Rules published at call time.
func (s *Store) Solve(e Element) ComputedProperties {
	return s.Current().Solve(e)
}
