// Package defcache provides read-through caches for definitions that are
// treated as immutable for the lifetime of a connection.
package defcache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/dsp-client/pkg/dsp"
)

// FetchFunc loads the value for key from its source.
type FetchFunc[T any] func(ctx context.Context, key string) (T, error)

// Logger receives second-level store failures, which never fail a Get.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// Stats counts cache activity.
type Stats struct {
	Hits    int64
	Misses  int64
	Fetches int64
	// Shared counts misses that joined a fetch already in flight.
	Shared int64
	// StoreHits counts misses answered by the second-level store.
	StoreHits int64
}

// Cache resolves keys through an in-process map, an optional second-level
// store and finally fetch. Concurrent misses for one key share one fetch.
// Successful results are kept forever; failures are not kept.
type Cache[T any] struct {
	name  string
	fetch FetchFunc[T]
	store dsp.Cache
	log   Logger

	mu       sync.RWMutex
	resolved map[string]T
	group    singleflight.Group

	hits, misses, fetches, shared, storeHits atomic.Int64
}

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithStore adds a second-level store consulted before fetch.
func WithStore[T any](store dsp.Cache) Option[T] {
	return func(c *Cache[T]) {
		c.store = store
	}
}

// WithLogger sets the logger for second-level store failures.
func WithLogger[T any](log Logger) Option[T] {
	return func(c *Cache[T]) {
		c.log = log
	}
}

// New creates a cache named name (used as the store key prefix).
func New[T any](name string, fetch FetchFunc[T], opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		name:     name,
		fetch:    fetch,
		resolved: make(map[string]T),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the value for key. A caller whose ctx ends stops waiting; the
// shared fetch continues and still stores its result.
func (c *Cache[T]) Get(ctx context.Context, key string) (T, error) {
	if value, ok := c.lookup(key); ok {
		c.hits.Add(1)

		return value, nil
	}

	c.misses.Add(1)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx), key)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}

		if res.Err != nil {
			var zero T

			return zero, res.Err
		}

		return res.Val.(T), nil //nolint:forcetypeassert
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

func (c *Cache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.resolved[key]

	return value, ok
}

// load runs once per key at a time.
func (c *Cache[T]) load(ctx context.Context, key string) (T, error) {
	// a fetch that finished between lookup and DoChan already stored the value
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	if value, ok := c.fromStore(ctx, key); ok {
		c.storeHits.Add(1)
		c.commit(key, value)

		return value, nil
	}

	c.fetches.Add(1)

	value, err := c.fetch(ctx, key)
	if err != nil {
		return value, err
	}

	c.commit(key, value)
	c.toStore(ctx, key, value)

	return value, nil
}

func (c *Cache[T]) commit(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolved[key] = value
}

func (c *Cache[T]) storeKey(key string) string {
	return c.name + ":" + key
}

func (c *Cache[T]) fromStore(ctx context.Context, key string) (T, bool) {
	var value T

	if c.store == nil {
		return value, false
	}

	entry, err := c.store.Get(ctx, c.storeKey(key))
	if err != nil {
		return value, false
	}

	if err := json.Unmarshal(entry.Data, &value); err != nil {
		c.warn("discarding undecodable cache entry", key, err)

		return value, false
	}

	return value, true
}

func (c *Cache[T]) toStore(ctx context.Context, key string, value T) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.warn("encoding cache entry", key, err)

		return
	}

	if err := c.store.Set(ctx, c.storeKey(key), &dsp.CacheEntry{Data: data}); err != nil {
		c.warn("writing cache entry", key, err)
	}
}

func (c *Cache[T]) warn(msg, key string, err error) {
	if c.log == nil {
		return
	}

	c.log.Warn(msg, map[string]interface{}{
		"cache": c.name,
		"key":   key,
		"error": err.Error(),
	})
}

// Len returns the number of resolved keys.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.resolved)
}

// Stats returns a snapshot of the counters.
func (c *Cache[T]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Fetches:   c.fetches.Load(),
		Shared:    c.shared.Load(),
		StoreHits: c.storeHits.Load(),
	}
}
