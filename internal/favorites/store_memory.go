package favorites

import (
	"context"
	"sync"
)

type MemStore struct {
	mu sync.RWMutex
	m  map[string][]string
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{m: map[string][]string{}}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Load(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.m[sessionID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *MemStore) Save(ctx context.Context, sessionID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		delete(s.m, sessionID)
		return nil
	}
	cp := make([]string, len(ids))
	copy(cp, ids)
	s.m[sessionID] = cp
	return nil
}
