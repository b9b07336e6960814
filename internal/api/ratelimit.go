package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleThreshold = 1 * time.Hour
	limiterCleanupEvery  = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	clients     map[string]*clientLimiter
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter allows each client limit requests per second with the given
// burst. Call Stop to end the idle-client cleanup loop.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		limit:       limit,
		burst:       burst,
		clients:     make(map[string]*clientLimiter),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup(time.Now())
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *RateLimiter) cleanup(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ip, c := range r.clients {
		if now.Sub(c.lastSeen) > limiterIdleThreshold {
			delete(r.clients, ip)
		}
	}
}

// Stop ends the cleanup loop
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow reports whether the client may make a request now
func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	c, ok := r.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[ip] = c
	}
	c.lastSeen = time.Now()
	r.mu.Unlock()

	return c.limiter.Allow()
}
