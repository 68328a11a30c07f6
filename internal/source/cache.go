package source

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/voltview/internal/contract"
	"github.com/huangsam/voltview/schema"
)

// Cached keeps the last successful fetch for a TTL.
// Concurrent callers share one in-flight fetch.
type Cached struct {
	next contract.Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	records   []schema.Record
	fetchedAt time.Time
	valid     bool
}

var _ contract.Fetcher = &Cached{} // Compile-time check

// NewCached wraps next with a TTL cache.
func NewCached(next contract.Fetcher, ttl time.Duration) *Cached {
	return &Cached{next: next, ttl: ttl, now: time.Now}
}

// Fetch implements contract.Fetcher. Failures are never cached.
func (c *Cached) Fetch(ctx context.Context) ([]schema.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.records, nil
	}
	records, err := c.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.records = records
	c.fetchedAt = c.now()
	c.valid = true
	return records, nil
}

// Invalidate drops the cached dataset.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.records = nil
}
