// Package cache implements the look-aside cache for catalog reads: a small
// store abstraction with TTL plus the fixed key templates and invalidation
// sets bound to catalog writes.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired
var ErrMiss = errors.New("cache: miss")

// Store is a key-value store with TTL. Callers always pass explicit TTLs,
// so backends never see zero.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}
