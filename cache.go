package main

import (
	"sync"
	"time"
)

// QueryCache is an in-memory TTL cache for expensive query results, mainly
// the resolved batter population.
type QueryCache struct {
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		cache: make(map[string]cacheEntry),
	}
}

func (c *QueryCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *QueryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, found := c.cache[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return entry.value, true
}

func (c *QueryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}

func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// RateLimiter implements per-client token buckets. Buckets start full at
// the burst size and refill at rate tokens per minute.
type RateLimiter struct {
	mu      sync.Mutex
	rate    float64
	burst   float64
	buckets map[string]*tokenBucket
}

type tokenBucket struct {
	tokens   float64
	lastFill time.Time
}

func NewRateLimiter(rate, burst int) *RateLimiter {
	return &RateLimiter{
		rate:    float64(rate),
		burst:   float64(burst),
		buckets: make(map[string]*tokenBucket),
	}
}

func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, found := rl.buckets[client]
	if !found {
		bucket = &tokenBucket{tokens: rl.burst, lastFill: now}
		rl.buckets[client] = bucket
	}

	elapsed := now.Sub(bucket.lastFill).Minutes()
	bucket.tokens += elapsed * rl.rate
	if bucket.tokens > rl.burst {
		bucket.tokens = rl.burst
	}
	bucket.lastFill = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}
