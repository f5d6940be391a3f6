// Package metadata caches per-route metadata descriptors with a TTL.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mohammed-shakir/eia-search/internal/cache"
	"github.com/mohammed-shakir/eia-search/internal/cache/keys"
	"github.com/mohammed-shakir/eia-search/internal/core/model"
	"github.com/mohammed-shakir/eia-search/internal/core/observability"
)

// Fetcher retrieves a route's metadata from the upstream API.
type Fetcher interface {
	FetchRouteMetadata(ctx context.Context, route model.Route) (*model.RouteMetadata, error)
}

// Cache is the lazy TTL cache over a byte store. Expiry is checked on
// read against the entry's FetchedAt, so a store backend with a longer
// (or no) entry lifetime still honors the configured TTL. Concurrent
// misses for the same route may each fetch; the fetch is idempotent and
// the last write wins.
type Cache struct {
	logger *slog.Logger
	store  cache.Store
	fetch  Fetcher
	ttl    time.Duration
	now    func() time.Time // for tests
}

func New(logger *slog.Logger, store cache.Store, fetch Fetcher, ttl time.Duration) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		logger: logger,
		store:  store,
		fetch:  fetch,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached metadata when present and younger than the TTL,
// otherwise fetches, stores the result wholesale and returns it. Store
// failures degrade to a fetch; they never fail the call.
func (c *Cache) Get(ctx context.Context, route model.Route) (*model.RouteMetadata, error) {
	key := keys.RouteKey(route.ID)

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "metadata store read failed", "route", route.ID, "err", err)
	} else if ok {
		var md model.RouteMetadata
		if err := json.Unmarshal(raw, &md); err != nil {
			c.logger.WarnContext(ctx, "metadata cache entry corrupt, refetching", "route", route.ID, "err", err)
		} else if c.now().Sub(md.FetchedAt) < c.ttl {
			observability.IncCacheHit()
			return &md, nil
		}
		// expired entries are treated the same as absent ones
	}
	observability.IncCacheMiss()

	md, err := c.fetch.FetchRouteMetadata(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for %s: %w", route.ID, err)
	}
	if md.FetchedAt.IsZero() {
		md.FetchedAt = c.now().UTC()
	}

	if raw, err := json.Marshal(md); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "metadata store write failed", "route", route.ID, "err", err)
		}
	}

	return md, nil
}

// Invalidate removes a route's entry, forcing a refetch on the next Get.
func (c *Cache) Invalidate(ctx context.Context, routeID string) error {
	return c.store.Del(ctx, keys.RouteKey(routeID))
}
