package favorites

import (
	"context"
	"errors"
)

// ErrConflict means another writer replaced the same session's list first.
var ErrConflict = errors.New("favorites changed concurrently")

// Store persists the ordered favorite ids of each session.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]string, error)
	Save(ctx context.Context, sessionID string, ids []string) error
	Ping(ctx context.Context) error
}
