package metrics

import "sync/atomic"

// CacheMetric counts hits and misses for one cache.
type CacheMetric struct {
	name   string
	hits   atomic.Int64
	misses atomic.Int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (c *CacheMetric) Hit() {
	if Enabled() {
		c.hits.Add(1)
	}
}

// Miss records a cache miss.
func (c *CacheMetric) Miss() {
	if Enabled() {
		c.misses.Add(1)
	}
}

func (c *CacheMetric) Name() string  { return c.name }
func (c *CacheMetric) Hits() int64   { return c.hits.Load() }
func (c *CacheMetric) Misses() int64 { return c.misses.Load() }

// HitRate returns hits/(hits+misses), or 0 with no lookups.
func (c *CacheMetric) HitRate() float64 {
	h, m := c.Hits(), c.Misses()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}

// Reset zeroes both counters.
func (c *CacheMetric) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// RosterCache tracks roster loader cache lookups.
var RosterCache = newCacheMetric("roster_cache")

// AllCacheMetrics returns every registered cache metric.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{RosterCache}
}
