package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Load for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Store persists session values server-side.
type Store interface {
	Load(ctx context.Context, id string) (map[string]any, error)
	Save(ctx context.Context, id string, values map[string]any, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}
