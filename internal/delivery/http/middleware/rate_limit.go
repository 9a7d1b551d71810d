package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket keyed by IP, with a
// background sweep that forgets idle clients. Shutdown stops the sweep.
type RateLimiter struct {
	visitors    map[string]*visitor
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	sweepPeriod time.Duration
	visitorTTL  time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, sweepPeriod, visitorTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors:    make(map[string]*visitor),
		limit:       limit,
		burst:       burst,
		sweepPeriod: sweepPeriod,
		visitorTTL:  visitorTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

// Shutdown stops the background sweep goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
