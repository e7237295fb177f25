package core

import "sync"

// Subscriptions is a per-key callback registry backends embed to
// implement Settings.Subscribe.
type Subscriptions struct {
	mu     sync.Mutex
	nextID uint64
	byKey  map[string]map[uint64]func(string)
}

// Add registers fn for key and returns its cancel function.
func (s *Subscriptions) Add(key string, fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byKey == nil {
		s.byKey = make(map[string]map[uint64]func(string))
	}
	if s.byKey[key] == nil {
		s.byKey[key] = make(map[uint64]func(string))
	}
	id := s.nextID
	s.nextID++
	s.byKey[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.byKey[key], id)
	}
}

// Fire calls every callback registered for key.
// Callbacks run outside the lock so they may subscribe or cancel.
func (s *Subscriptions) Fire(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.byKey[key]))
	for _, fn := range s.byKey[key] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// Len returns the number of active subscriptions.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, fns := range s.byKey {
		n += len(fns)
	}
	return n
}
