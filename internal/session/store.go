// Package session implements the server-side session store backing cookie
// authentication. A session maps an opaque token to the authenticated user
// id and expires after a TTL of inactivity; every authenticated request
// refreshes the TTL (sliding expiration). Two implementations exist: Redis
// for shared state across processes and an in-memory map used when Redis
// is unavailable and in tests.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned by Get and Refresh when the token has no
// live session, either because it never existed, expired, or was deleted
// by logout.
var ErrSessionNotFound = errors.New("session not found")

// Data is the attribute set stored per session. The only attribute the
// application needs is the user id; everything else is read fresh from the
// database on each request so role changes take effect immediately.
type Data struct {
	UserID uint64 `json:"user_id"`
}

// Store is the session store contract. All operations act on a single
// token and are atomic with respect to each other.
type Store interface {
	// Create stores data under token with the given TTL, replacing any
	// previous session with the same token.
	Create(ctx context.Context, token string, data Data, ttl time.Duration) error
	// Get returns the data bound to token, or ErrSessionNotFound.
	Get(ctx context.Context, token string) (Data, error)
	// Refresh extends the session lifetime to ttl from now. Refreshing a
	// missing session returns ErrSessionNotFound.
	Refresh(ctx context.Context, token string, ttl time.Duration) error
	// Delete removes the session. Deleting a missing session is not an
	// error, which makes logout idempotent.
	Delete(ctx context.Context, token string) error
}

// New selects a store implementation: Redis when a live client is
// available, otherwise the in-memory fallback. A nil client is the
// degraded-startup signal from config.NewRedisClient.
func New(rdb *redis.Client) Store {
	if rdb != nil {
		return NewRedisStore(rdb)
	}
	return NewMemoryStore()
}
