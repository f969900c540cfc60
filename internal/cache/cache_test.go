package cache

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nandervang/consultant-time-track-sub001/internal/projection"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(ttl, clock.Now), clock
}

func sampleBuckets() []projection.MonthlyBucket {
	return []projection.MonthlyBucket{{
		Month:          "2025-09",
		OpeningBalance: decimal.RequireFromString("50000"),
		TotalIncome:    decimal.RequireFromString("0"),
		TotalExpenses:  decimal.RequireFromString("5000"),
		NetFlow:        decimal.RequireFromString("-5000"),
		ClosingBalance: decimal.RequireFromString("45000"),
		IsProjection:   true,
	}}
}

func TestCache_HitBeforeTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", sampleBuckets(), 0)

	clock.Advance(59 * time.Second)
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, sampleBuckets(), got)
}

func TestCache_MissAtExactTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", sampleBuckets(), 0)

	clock.Advance(time.Minute)
	_, ok := c.Get("key")
	assert.False(t, ok, "entry expires once the full TTL has elapsed")
}

func TestCache_MissAfterTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", sampleBuckets(), 0)

	clock.Advance(61 * time.Second)
	_, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry evicted on read")
}

func TestCache_ExplicitTTLOverridesDefault(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", sampleBuckets(), 10*time.Minute)

	clock.Advance(5 * time.Minute)
	_, ok := c.Get("key")
	assert.True(t, ok)
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestCache_InvalidatePatternScope(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("user-a|2025-09-01|2025-11-30", sampleBuckets(), 0)
	c.Set("user-a|2025-01-01|2025-12-31", sampleBuckets(), 0)
	c.Set("user-b|2025-09-01|2025-11-30", sampleBuckets(), 0)

	removed := c.Invalidate("user-a")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("user-b|2025-09-01|2025-11-30")
	assert.True(t, ok, "unrelated entries intact")
	_, ok = c.Get("user-a|2025-09-01|2025-11-30")
	assert.False(t, ok)
}

func TestCache_InvalidateAll(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("one", sampleBuckets(), 0)
	c.Set("two", sampleBuckets(), 0)

	removed := c.Invalidate("")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, c.Len())
}

func TestCache_SetOverwritesAndRefreshesTTL(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Set("key", nil, 0)
	clock.Advance(45 * time.Second)
	c.Set("key", sampleBuckets(), 0)
	clock.Advance(45 * time.Second)

	got, ok := c.Get("key")
	assert.True(t, ok, "TTL measured from most recent insertion")
	assert.Equal(t, sampleBuckets(), got)
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key", sampleBuckets(), 0)

	got, ok := c.Get("key")
	assert.True(t, ok)
	got[0].Month = "mutated"

	again, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "2025-09", again[0].Month)
}

func TestKey_Structure(t *testing.T) {
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)

	key := Key("user-1", from, to, "2025-09", decimal.RequireFromString("50000"))

	assert.Equal(t, "user-1|2025-09-01|2025-11-30|2025-09|50000", key)
}
