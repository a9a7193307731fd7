package analytics

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// SentimentCache memoizes sentiment scores by record id for the lifetime
// of the analytics instance. It is never persisted and grows unboundedly
// during a session, which is acceptable for the expected input sizes;
// callers needing eviction must wrap it externally.
//
// The cache is safe for concurrent hosts. Lookups for the same uncached id
// are collapsed through a singleflight group so concurrent requests do not
// both incur an external call. This is best-effort memoization, not an
// exactly-once guarantee.
type SentimentCache struct {
	mu     sync.Mutex
	scores map[string]float64
	group  singleflight.Group
}

// NewSentimentCache returns an empty cache. Tests create a fresh cache per
// case for isolation.
func NewSentimentCache() *SentimentCache {
	return &SentimentCache{scores: make(map[string]float64)}
}

// Get returns the cached score for id, if present.
func (c *SentimentCache) Get(id string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	score, ok := c.scores[id]
	return score, ok
}

// Put stores a score for id, overwriting any existing entry.
func (c *SentimentCache) Put(id string, score float64) {
	c.mu.Lock()
	c.scores[id] = score
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *SentimentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scores)
}

// score returns the cached value for id or computes, stores, and returns
// it via compute. Concurrent callers for the same id share one compute.
func (c *SentimentCache) score(id string, compute func() float64) float64 {
	if s, ok := c.Get(id); ok {
		return s
	}

	v, _, _ := c.group.Do(id, func() (any, error) {
		if s, ok := c.Get(id); ok {
			return s, nil
		}
		s := compute()
		c.Put(id, s)
		return s, nil
	})
	return v.(float64)
}
