package favorites

import (
	"context"
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"AvisailYachts/internal/catalog"
)

var ErrUnknownYacht = errors.New("unknown yacht")

// Catalog is the lookup Service needs to reject ids that are not listed.
type Catalog interface {
	Get(id string) (catalog.Yacht, bool)
}

const (
	opAdd    = "add"
	opRemove = "remove"
	opToggle = "toggle"
)

type Metrics struct {
	Mutations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "favorites_mutations_total",
				Help: "Favorites mutations by operation and whether the set changed",
			},
			[]string{"op", "changed"},
		),
	}
	reg.MustRegister(m.Mutations)
	return m
}

func (m *Metrics) observe(op string, changed bool) {
	if m == nil {
		return
	}
	c := "false"
	if changed {
		c = "true"
	}
	m.Mutations.WithLabelValues(op, c).Inc()
}

// Service owns every favorites read-modify-write. One mutex covers all
// sessions so Store implementations need no transactional read-modify-write.
type Service struct {
	Store   Store
	Catalog Catalog
	Metrics *Metrics

	mu sync.Mutex
}

func NewService(store Store, catalog Catalog) *Service {
	return &Service{Store: store, Catalog: catalog}
}

func (s *Service) IDs(ctx context.Context, sessionID string) ([]string, error) {
	set, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

func (s *Service) Add(ctx context.Context, sessionID, yachtID string) ([]string, error) {
	if _, ok := s.Catalog.Get(yachtID); !ok {
		return nil, ErrUnknownYacht
	}
	set, err := s.mutate(ctx, sessionID, func(set *Set) bool { return set.Add(yachtID) }, opAdd)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

// Remove accepts ids no longer in the catalog so stale entries can be cleared.
func (s *Service) Remove(ctx context.Context, sessionID, yachtID string) ([]string, error) {
	set, err := s.mutate(ctx, sessionID, func(set *Set) bool { return set.Remove(yachtID) }, opRemove)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

// Toggle returns whether yachtID is a favorite afterwards. Only adding
// requires the yacht to be listed.
func (s *Service) Toggle(ctx context.Context, sessionID, yachtID string) (bool, error) {
	var on, unknown bool
	_, err := s.mutate(ctx, sessionID, func(set *Set) bool {
		if !set.Has(yachtID) {
			if _, ok := s.Catalog.Get(yachtID); !ok {
				unknown = true
				return false
			}
		}
		on = set.Toggle(yachtID)
		return true
	}, opToggle)
	if err != nil {
		return false, err
	}
	if unknown {
		return false, ErrUnknownYacht
	}
	return on, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Set, error) {
	ids, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewSet(ids...), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Set) bool, op string) (*Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	changed := fn(set)
	s.Metrics.observe(op, changed)
	if !changed {
		return set, nil
	}
	if err := s.Store.Save(ctx, sessionID, set.IDs()); err != nil {
		return nil, err
	}
	return set, nil
}
