// Package cache defines the byte store backing the route metadata cache.
package cache

import (
	"context"
	"time"
)

// Store implementations must be safe for concurrent use. A Get on a
// missing or expired key returns (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
