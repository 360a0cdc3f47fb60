package ecs

import "github.com/kamstrup/intmap"

// EntitySet is an insertion-ordered set of entity ids. The zero value is
// ready to use.
type EntitySet struct {
	order []EntityId
	index *intmap.Map[EntityId, int]
}

func (s *EntitySet) init() {
	if s.index == nil {
		s.index = intmap.New[EntityId, int](64)
	}
}

// Add appends id and returns false if it was already present.
func (s *EntitySet) Add(id EntityId) bool {
	s.init()
	if _, ok := s.index.Get(id); ok {
		return false
	}
	s.index.Put(id, len(s.order))
	s.order = append(s.order, id)
	return true
}

// Remove deletes id, keeping the order of the remaining ids.
// Returns false if id was not present.
func (s *EntitySet) Remove(id EntityId) bool {
	s.init()
	pos, ok := s.index.Get(id)
	if !ok {
		return false
	}
	s.index.Del(id)
	copy(s.order[pos:], s.order[pos+1:])
	s.order = s.order[:len(s.order)-1]
	for i := pos; i < len(s.order); i++ {
		s.index.Put(s.order[i], i)
	}
	return true
}

func (s *EntitySet) Has(id EntityId) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index.Get(id)
	return ok
}

func (s *EntitySet) Len() int {
	return len(s.order)
}

// Ids returns a copy of the ids in insertion order.
func (s *EntitySet) Ids() []EntityId {
	out := make([]EntityId, len(s.order))
	copy(out, s.order)
	return out
}
