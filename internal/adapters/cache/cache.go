// Package cache memoizes loader results for a fixed time window.
package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/okian/govdash/pkg/logger"
	"github.com/okian/govdash/pkg/metrics"
)

const (
	defaultTTL             = 5 * time.Minute
	defaultCleanupInterval = 10 * time.Minute
)

// Cache is a time-to-live store shared by any number of memoized loaders.
// Entries expire a fixed duration after insertion; failed loads are not stored.
type Cache struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	store           *gocache.Cache
	group           singleflight.Group
	logger          logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Loads   int64 `json:"loads"`
	Entries int   `json:"entries"`
}

// New creates a cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:             defaultTTL,
		cleanupInterval: defaultCleanupInterval,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.store = gocache.New(c.ttl, c.cleanupInterval)
	return c
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Invalidate drops key so the next lookup loads again.
func (c *Cache) Invalidate(key string) {
	c.store.Delete(key)
	metrics.UpdateCacheEntries(c.store.ItemCount())
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.store.Flush()
	metrics.UpdateCacheEntries(0)
}

// Stats returns counters since creation.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Loads:   c.loads.Load(),
		Entries: c.store.ItemCount(),
	}
}

// lookup returns the fresh value for key, or calls load once for all
// concurrent callers of the same key and stores a successful result.
func (c *Cache) lookup(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if v, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		metrics.RecordCacheHit(key)
		return v, nil
	}

	c.misses.Add(1)
	metrics.RecordCacheMiss(key)

	// The shared load ignores the starting caller's cancellation and is bounded
	// by the loader's own timeout. Each caller waits on its own ctx.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// A caller that lost the race to an earlier flight may find the value stored.
		if v, ok := c.store.Get(key); ok {
			return v, nil
		}
		c.loads.Add(1)
		start := time.Now()
		v, err := load(loadCtx)
		metrics.RecordCacheLoad(key, err == nil)
		if err != nil {
			return nil, err
		}
		c.store.Set(key, v, gocache.DefaultExpiration)
		metrics.UpdateCacheEntries(c.store.ItemCount())
		c.logger.Debug(loadCtx, "cache entry loaded",
			logger.String("key", key),
			logger.Duration("took", time.Since(start)),
			logger.Duration("ttl", c.ttl),
		)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug(ctx, "cache load shared", logger.String("key", key))
		}
		return res.Val, nil
	}
}

// LoadFunc produces the value to memoize.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Memo is a loader bound to one cache key.
type Memo[T any] struct {
	cache *Cache
	key   string
	load  LoadFunc[T]
}

// Memoize binds load to key in c.
func Memoize[T any](c *Cache, key string, load LoadFunc[T]) *Memo[T] {
	return &Memo[T]{cache: c, key: key, load: load}
}

// Key returns the cache key.
func (m *Memo[T]) Key() string { return m.key }

// Get returns the cached value, loading it when absent or expired.
func (m *Memo[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if m.load == nil {
		return zero, ErrNilLoader
	}
	v, err := m.cache.lookup(ctx, m.key, func(ctx context.Context) (any, error) {
		return m.load(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrTypeAssert, m.key, v)
	}
	return t, nil
}

// Invalidate drops the memoized value.
func (m *Memo[T]) Invalidate() { m.cache.Invalidate(m.key) }
