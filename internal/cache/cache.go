package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
)

// DefaultTTL is how long a cached projection stays valid when no
// explicit TTL is given.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	buckets   []projection.MonthlyBucket
	expiresAt time.Time
}

// Cache memoizes aggregation results keyed by the query parameter
// tuple. It holds only aggregation outputs, never source data, so a
// dropped entry costs a recomputation and nothing else.
//
// A single mutex guards the map; operations are cheap enough that a
// coarse lock is sufficient.
type Cache struct {
	mu      sync.Mutex
	clock   func() time.Time
	ttl     time.Duration
	entries map[string]cacheEntry
}

// New creates a cache with the given default TTL (DefaultTTL if
// non-positive), using the wall clock.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock creates a cache with an injected time source so TTL
// behavior is testable.
func NewWithClock(ttl time.Duration, clock func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached buckets for key. An entry is expired once its
// full TTL has elapsed; an expired entry is evicted and reported as a
// miss.
func (c *Cache) Get(key string) ([]projection.MonthlyBucket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	buckets := make([]projection.MonthlyBucket, len(entry.buckets))
	copy(buckets, entry.buckets)
	return buckets, true
}

// Set stores buckets under key. A non-positive ttl uses the cache's
// default.
func (c *Cache) Set(key string, buckets []projection.MonthlyBucket, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	stored := make([]projection.MonthlyBucket, len(buckets))
	copy(stored, buckets)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		buckets:   stored,
		expiresAt: c.clock().Add(ttl),
	}
}

// Invalidate removes every key containing pattern as a substring and
// returns the number of entries removed. An empty pattern clears the
// whole cache.
func (c *Cache) Invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		removed := len(c.entries)
		c.entries = make(map[string]cacheEntry)
		return removed
	}

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key builds the structured cache key for a projection query. The user
// scope leads the key so mutation paths can invalidate by scope.
func Key(userID string, windowStart, windowEnd time.Time, businessStartMonth string, initialBalance decimal.Decimal) string {
	return strings.Join([]string{
		userID,
		windowStart.Format("2006-01-02"),
		windowEnd.Format("2006-01-02"),
		businessStartMonth,
		initialBalance.String(),
	}, "|")
}
