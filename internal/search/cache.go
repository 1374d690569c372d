package search

import (
	"context"
	"sync"
	"time"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/obs"
)

type cacheEntry struct {
	val     Outcome
	expiry  time.Time
	ready   bool
	waiters []chan resultOrErr
}

type resultOrErr struct {
	res Outcome
	err error
}

// Cache is an in-process TTL cache that collapses concurrent computations
// of the same key into one. Errors are handed to the waiting callers but
// never stored.
type Cache struct {
	mu        sync.Mutex
	ttl       time.Duration
	items     map[string]*cacheEntry
	metrics   *obs.Metrics
	lastSweep time.Time
}

func NewCache(ttl time.Duration, m *obs.Metrics) *Cache {
	return &Cache{ttl: ttl, items: make(map[string]*cacheEntry), metrics: m}
}

func (c *Cache) GetOrCompute(ctx context.Context, key string, fn func(ctx context.Context) (Outcome, error)) (Outcome, error) {
	c.mu.Lock()
	entry, found := c.items[key]

	if found && entry.ready && time.Now().Before(entry.expiry) {
		val := entry.val
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.IncCacheHits()
		}
		return val, nil
	}

	// join the in-flight computation
	if found && !entry.ready {
		ch := make(chan resultOrErr, 1)
		entry.waiters = append(entry.waiters, ch)
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return Outcome{}, ctx.Err()
		case r := <-ch:
			return r.res, r.err
		}
	}

	c.sweepLocked(time.Now())
	entry = &cacheEntry{}
	c.items[key] = entry
	c.mu.Unlock()

	// the result is shared with waiters, so the first caller going away
	// must not cancel it; its deadline still applies
	cctx, cancel := detach(ctx)
	res, err := fn(cctx)
	cancel()

	c.mu.Lock()
	waiters := entry.waiters
	entry.waiters = nil
	if err != nil {
		delete(c.items, key)
	} else {
		entry.val = res
		entry.expiry = time.Now().Add(c.ttl)
		entry.ready = true
	}
	c.mu.Unlock()

	for _, w := range waiters {
		w <- resultOrErr{res: res, err: err}
		close(w)
	}

	return res, err
}

// sweepLocked drops expired entries, at most once per ttl. c.mu must be held.
func (c *Cache) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) < c.ttl {
		return
	}
	c.lastSweep = now
	for k, e := range c.items {
		if e.ready && !now.Before(e.expiry) {
			delete(c.items, k)
		}
	}
}

func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(base, deadline)
	}
	return base, func() {}
}
