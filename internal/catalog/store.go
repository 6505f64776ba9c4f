package catalog

import "context"

// Store is the read side of the catalog. Implementations are immutable after
// construction and safe for concurrent readers.
type Store interface {
	All() []Yacht
	Get(id string) (Yacht, bool)
	Featured() []Yacht
	Available() []Yacht
	ByIDs(ids []string) []Yacht
	Related(reference Yacht, k int) []Yacht
	Len() int
	Ping(ctx context.Context) error
}
