package state

import "sync"

// Slot is a single published value guarded by its own mutex.
// The zero value is an empty slot.
type Slot[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

// Load returns the current value and whether one is present
func (s *Slot[T]) Load() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Store replaces the value
func (s *Slot[T]) Store(v T) {
	s.mu.Lock()
	s.value = v
	s.set = true
	s.mu.Unlock()
}

// Clear empties the slot
func (s *Slot[T]) Clear() {
	var zero T
	s.mu.Lock()
	s.value = zero
	s.set = false
	s.mu.Unlock()
}

// LoadOr returns the current value, or def when the slot is empty
func (s *Slot[T]) LoadOr(def T) T {
	if v, ok := s.Load(); ok {
		return v
	}
	return def
}
