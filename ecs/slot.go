package ecs

// Slot is a single-value holder where the last writer wins and only the
// current holder may clear it.
type Slot[T comparable] struct {
	value T
	set   bool
}

// Set stores v, replacing whatever was held.
func (s *Slot[T]) Set(v T) {
	s.value = v
	s.set = true
}

// Get returns the held value and whether one is held.
func (s *Slot[T]) Get() (T, bool) {
	return s.value, s.set
}

// Holds reports whether v is the current value.
func (s *Slot[T]) Holds(v T) bool {
	return s.set && s.value == v
}

// Release clears the slot if owner currently holds it.
func (s *Slot[T]) Release(owner T) bool {
	if !s.Holds(owner) {
		return false
	}
	var zero T
	s.value = zero
	s.set = false
	return true
}
