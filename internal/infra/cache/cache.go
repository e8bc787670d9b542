package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Observer receives hit/miss notifications (metrics.Collector satisfies it).
type Observer interface {
	ObserveCache(cache string, hit bool)
}

// TTL is a size-bounded LRU whose entries expire after a fixed duration.
// Concurrent misses for the same key share one load.
type TTL[V any] struct {
	name     string
	lru      *expirable.LRU[string, V]
	group    singleflight.Group
	observer Observer
}

func NewTTL[V any](name string, ttl time.Duration, maxSize int, observer Observer) *TTL[V] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxSize <= 0 {
		maxSize = 128
	}
	return &TTL[V]{
		name:     name,
		lru:      expirable.NewLRU[string, V](maxSize, nil, ttl),
		observer: observer,
	}
}

func (c *TTL[V]) Get(key string) (V, bool) { return c.lru.Get(key) }

func (c *TTL[V]) Set(key string, value V) { c.lru.Add(key, value) }

func (c *TTL[V]) Delete(key string) { c.lru.Remove(key) }

func (c *TTL[V]) Len() int { return c.lru.Len() }

// GetOrLoad returns the cached value or runs load once for all concurrent
// callers of the same key. Failed loads are not cached.
func (c *TTL[V]) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		c.observe(true)
		return v, nil
	}
	c.observe(false)

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (c *TTL[V]) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(c.name, hit)
	}
}
