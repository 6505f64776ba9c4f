package favorites

// Set is an ordered set of yacht ids. Insertion order is kept so a restored
// list renders the way it was saved. A Set is not safe for concurrent
// mutation; Service serializes access for the HTTP handlers.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// NewSet restores a set; duplicate and empty ids are dropped.
func NewSet(ids ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add is idempotent. It reports whether the set changed.
func (s *Set) Add(id string) bool {
	if id == "" || s.Has(id) {
		return false
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}
	return true
}

// Remove is idempotent. It reports whether the set changed.
func (s *Set) Remove(id string) bool {
	if !s.Has(id) {
		return false
	}
	delete(s.index, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips membership and returns the new state.
func (s *Set) Toggle(id string) bool {
	if s.Remove(id) {
		return false
	}
	return s.Add(id)
}

func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int { return len(s.ids) }

// IDs returns a copy in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
