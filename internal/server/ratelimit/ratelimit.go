// Package ratelimit provides per-client request throttling using the token
// bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single token bucket. Tokens refill continuously at refillRate
// per second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

func newBucket(capacity int, refillRate float64) *bucket {
	now := time.Now()
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// take refills the bucket for elapsed time and consumes one token if
// available. It reports whether the request is allowed, the tokens left,
// and when the bucket will be full again.
func (b *bucket) take() (allowed bool, remaining int, resetTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
	b.lastAccess = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	resetTime = now
	if b.tokens < float64(b.capacity) {
		secondsUntilFull := (float64(b.capacity) - b.tokens) / b.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, remaining, resetTime
}

// Info describes the rate limit state communicated back to the client.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages one token bucket per client+endpoint+method combination.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil configuration enables the limiter with defaults.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow checks if a request from the given client is allowed for the
// specified endpoint.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g. health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + endpoint + ":" + method
	allowed, remaining, resetTime := l.getBucket(key, endpointConfig).take()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) getBucket(key string, cfg *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = cfg.Limit
	}
	b := newBucket(capacity, float64(cfg.Limit)/cfg.Window.Seconds())
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for over an hour to bound memory.
func (l *Limiter) cleanupBuckets() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		b.mu.Lock()
		idle := b.lastAccess.Before(cutoff)
		b.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
