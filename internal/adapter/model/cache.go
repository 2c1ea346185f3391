package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/winter-risk-engine/internal/domain"
	"github.com/couchcryptid/winter-risk-engine/internal/observability"
)

// CachedModel wraps a Model with an in-memory LRU cache keyed by the full
// feature vector. Model output is deterministic per vector, so cached entries
// never go stale within a model version; the cache is rebuilt on restart.
type CachedModel struct {
	inner   domain.Model
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedModel creates a cache decorator around a model.
func NewCachedModel(inner domain.Model, maxEntries int, metrics *observability.Metrics) *CachedModel {
	return &CachedModel{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedModel) PredictRaw(ctx context.Context, features domain.FeatureVector) (float64, error) {
	key := cacheKey(features)
	if raw, ok := c.cache.get(key); ok {
		c.metrics.ModelCache.WithLabelValues("hit").Inc()
		return raw, nil
	}
	c.metrics.ModelCache.WithLabelValues("miss").Inc()

	raw, err := c.inner.PredictRaw(ctx, features)
	if err != nil {
		return raw, err
	}
	c.cache.put(key, raw)
	return raw, nil
}

// cacheKey serializes every feature field; two vectors differing in any field
// must never share an entry.
func cacheKey(f domain.FeatureVector) string {
	return fmt.Sprintf("%s|%g|%g|%g|%g|%g|%d|%d|%d|%g|%g",
		f.Neighborhood,
		f.Temperature, f.WindSpeed, f.WindChill, f.Precipitation, f.SnowDepth,
		f.Hour, f.DayOfWeek, f.Month,
		f.SESIndex, f.InfrastructureQuality,
	)
}

// lruCache is a simple thread-safe LRU cache for raw probabilities.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value float64
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
