package core

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmcloughlin/geohash"
)

// Cache is a TTL-bounded in-memory cache. Listing feeds, Overpass responses
// and walk graphs all sit behind one of these so repeated lookups around the
// same property don't refetch.
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry[T]
}

type cacheEntry[T any] struct {
	value   T
	expires time.Time
}

func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[T]),
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	var zero T
	if !ok {
		return zero, false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && c.now().After(e.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

// Set stores a value and drops any entries that have already expired, so
// one-off keys cannot accumulate indefinitely.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry[T]{value: value, expires: now.Add(c.ttl)}
	c.mu.Unlock()
}

// PointKey buckets a coordinate to a ~150m geohash cell so nearby repeat
// queries share cache entries, then appends the radius and any qualifiers.
func PointKey(lat, lon, radius float64, parts ...string) string {
	key := fmt.Sprintf("%s:%.0f", geohash.EncodeWithPrecision(lat, lon, 7), radius)
	if len(parts) > 0 {
		key += ":" + strings.Join(parts, ",")
	}
	return key
}
