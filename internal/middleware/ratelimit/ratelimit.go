// Package ratelimit implements a per-client token bucket used to throttle
// repeated login attempts. Throttling is deliberately layered around the
// login pipeline, not inside it.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket for a single client.
type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	client     string
	parent     *PerClient
}

// PerClient manages one bucket per client identity (typically an IP).
// Idle buckets expire to keep the map bounded.
type PerClient struct {
	buckets    map[string]*bucket
	mu         sync.RWMutex
	rate       float64
	capacity   float64
	expiration time.Duration
}

func New(rate, capacity float64, expiration time.Duration) *PerClient {
	return &PerClient{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
	}
}

func (p *PerClient) cleanup(client string) {
	p.mu.Lock()
	delete(p.buckets, client)
	p.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expiration, func() {
		b.parent.cleanup(b.client)
	})
}

func (p *PerClient) getBucket(client string) *bucket {
	p.mu.RLock()
	b, exists := p.buckets[client]
	p.mu.RUnlock()
	if exists {
		b.resetTimer()
		return b
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// double-check after acquiring the write lock
	if b, exists = p.buckets[client]; exists {
		b.resetTimer()
		return b
	}

	b = &bucket{
		tokens:     p.capacity,
		capacity:   p.capacity,
		rate:       p.rate,
		lastRefill: time.Now(),
		client:     client,
		parent:     p,
	}
	p.buckets[client] = b
	b.resetTimer()
	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()

	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow reports whether a request from the given client should proceed.
func (p *PerClient) Allow(client string) bool {
	return p.getBucket(client).allow()
}

// Stop cancels all expiration timers.
func (p *PerClient) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
