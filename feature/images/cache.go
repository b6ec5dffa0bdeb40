package images

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// statsCache holds the last built summary stats. Building them walks the
// whole remote inventory, so results are kept for a TTL and concurrent
// builds are collapsed with singleflight.
type statsCache struct {
	mu    sync.RWMutex
	value *SummaryReport
	built time.Time
	ttl   time.Duration
	sf    singleflight.Group
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl}
}

func (c *statsCache) expired() bool {
	if c.ttl <= 0 {
		return true // caching disabled
	}
	return c.value == nil || time.Since(c.built) > c.ttl
}

// get returns the cached stats, building them at most once per expiry.
func (c *statsCache) get(ctx context.Context, build func(ctx context.Context) (*SummaryReport, error)) (*SummaryReport, error) {
	// Fast path
	c.mu.RLock()
	if !c.expired() {
		value := c.value
		c.mu.RUnlock()
		return value, nil
	}
	c.mu.RUnlock()

	// Slow path: collapse concurrent builds
	result, err, _ := c.sf.Do("stats", func() (any, error) {
		// Double-check after winning the flight
		c.mu.RLock()
		if !c.expired() {
			value := c.value
			c.mu.RUnlock()
			return value, nil
		}
		c.mu.RUnlock()

		value, err := build(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.value = value
		c.built = time.Now()
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*SummaryReport), nil
}

// invalidate drops the cached value. Called after mutations (cleanup,
// optimization) so the next stats read reflects them.
func (c *statsCache) invalidate() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}
