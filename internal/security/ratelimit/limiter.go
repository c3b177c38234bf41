package ratelimit

import (
	"sync"
	"time"
)

// Limiter tracks request timestamps per client IP in a sliding window.
// Candidate-facing funnel endpoints are unauthenticated, so the client
// address is the only stable identity available.
type Limiter struct {
	mu       sync.RWMutex
	buckets  map[string]*bucket
	maxReqs  int
	window   time.Duration
	loginMax int
	loginWin time.Duration
	cleanup  *time.Ticker
}

type bucket struct {
	requests []time.Time
	lastSeen time.Time
}

func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	limiter := &Limiter{
		buckets:  make(map[string]*bucket),
		maxReqs:  maxRequests,
		window:   window,
		loginMax: 5,
		loginWin: time.Minute,
		cleanup:  time.NewTicker(5 * time.Minute),
	}
	go limiter.cleanupOldBuckets()
	return limiter
}

func (l *Limiter) Allow(clientIP string) bool {
	if clientIP == "" {
		return true
	}
	return l.take(clientIP, l.maxReqs, l.window)
}

// AllowLogin applies a much tighter budget to login attempts. It uses a
// separate bucket so a burst of funnel traffic from the same address does
// not lock the admin out.
func (l *Limiter) AllowLogin(clientIP string) bool {
	if clientIP == "" {
		return true
	}
	return l.take("login:"+clientIP, l.loginMax, l.loginWin)
}

func (l *Limiter) take(key string, maxReqs int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{requests: []time.Time{}}
		l.buckets[key] = b
	}

	cutoff := now.Add(-window)
	var reqs []time.Time
	for _, t := range b.requests {
		if t.After(cutoff) {
			reqs = append(reqs, t)
		}
	}
	b.requests = reqs
	b.lastSeen = now

	if len(b.requests) >= maxReqs {
		return false
	}

	b.requests = append(b.requests, now)
	return true
}

func (l *Limiter) cleanupOldBuckets() {
	for range l.cleanup.C {
		l.mu.Lock()
		staleThreshold := time.Now().Add(-15 * time.Minute)
		for key, b := range l.buckets {
			if b.lastSeen.Before(staleThreshold) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

func (l *Limiter) Stop() {
	l.cleanup.Stop()
}
