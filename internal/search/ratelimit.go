package search

import (
	"sync"
	"time"
)

// Simple token bucket per IP
type ipBucket struct {
	tokens     int
	lastRefill time.Time
}

type IPRateLimiter struct {
	mu             sync.Mutex
	buckets        map[string]*ipBucket
	cap            int
	refillDuration time.Duration
	lastSweep      time.Time
}

func NewIPRateLimiter(cap int, refill time.Duration) *IPRateLimiter {
	return &IPRateLimiter{buckets: make(map[string]*ipBucket), cap: cap, refillDuration: refill}
}

func (rl *IPRateLimiter) Allow(ip string) bool {
	if rl.cap <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := time.Now()
	rl.sweepLocked(now)
	b, ok := rl.buckets[ip]
	if !ok {
		rl.buckets[ip] = &ipBucket{tokens: rl.cap - 1, lastRefill: now}
		return true
	}
	if now.Sub(b.lastRefill) >= rl.refillDuration {
		b.tokens = rl.cap
		b.lastRefill = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked forgets buckets idle for a full refill period; they would be
// refilled to cap anyway. rl.mu must be held.
func (rl *IPRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.refillDuration {
		return
	}
	rl.lastSweep = now
	for ip, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= rl.refillDuration {
			delete(rl.buckets, ip)
		}
	}
}
