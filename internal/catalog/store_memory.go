package catalog

import (
	"context"
	"errors"
	"fmt"
)

type MemStore struct {
	yachts []Yacht
	byID   map[string]int
}

var _ Store = (*MemStore)(nil)

// NewMemStore validates yachts and takes a private copy of them. Every record
// problem is reported, not just the first.
func NewMemStore(yachts []Yacht) (*MemStore, error) {
	if len(yachts) == 0 {
		return nil, ErrEmptyCatalog
	}

	s := &MemStore{
		yachts: make([]Yacht, 0, len(yachts)),
		byID:   make(map[string]int, len(yachts)),
	}

	var errs []error
	for i, y := range yachts {
		if err := validate(y); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if _, dup := s.byID[y.ID]; dup {
			errs = append(errs, fmt.Errorf("record %d: %w: duplicate id %q", i, ErrInvalidYacht, y.ID))
			continue
		}
		s.byID[y.ID] = len(s.yachts)
		s.yachts = append(s.yachts, y.clone())
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Len() int { return len(s.yachts) }

func (s *MemStore) All() []Yacht {
	return s.filter(func(Yacht) bool { return true })
}

func (s *MemStore) Get(id string) (Yacht, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Yacht{}, false
	}
	return s.yachts[i].clone(), true
}

func (s *MemStore) Featured() []Yacht {
	return s.filter(func(y Yacht) bool { return y.Featured && y.IsAvailable() })
}

func (s *MemStore) Available() []Yacht {
	return s.filter(Yacht.IsAvailable)
}

// ByIDs keeps collection order, not the order of ids. Unknown ids are skipped.
func (s *MemStore) ByIDs(ids []string) []Yacht {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return s.filter(func(y Yacht) bool {
		_, ok := want[y.ID]
		return ok
	})
}

func (s *MemStore) Related(reference Yacht, k int) []Yacht {
	return Related(s.yachts, reference, k)
}

func (s *MemStore) filter(keep func(Yacht) bool) []Yacht {
	out := make([]Yacht, 0, len(s.yachts))
	for _, y := range s.yachts {
		if keep(y) {
			out = append(out, y.clone())
		}
	}
	return out
}
