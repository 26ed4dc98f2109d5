package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterPool holds one token bucket per client IP. Buckets are created on
// first sight and swept wholesale when the map grows past sweepThreshold;
// a refused request after a sweep just refills from a fresh bucket.
type limiterPool struct {
	mu      sync.RWMutex
	buckets map[string]*rate.Limiter
	rate    rate.Limit
	burst   int
}

const sweepThreshold = 10000

func newLimiterPool(rps float64, burst int) *limiterPool {
	return &limiterPool{
		buckets: make(map[string]*rate.Limiter),
		rate:    rate.Limit(rps),
		burst:   burst,
	}
}

func (p *limiterPool) allow(ip string) bool {
	p.mu.RLock()
	bucket, ok := p.buckets[ip]
	p.mu.RUnlock()
	if ok {
		return bucket.Allow()
	}

	p.mu.Lock()
	if bucket, ok = p.buckets[ip]; !ok {
		bucket = rate.NewLimiter(p.rate, p.burst)
		p.buckets[ip] = bucket
	}
	p.mu.Unlock()
	return bucket.Allow()
}

func (p *limiterPool) sweep() {
	p.mu.Lock()
	if len(p.buckets) > sweepThreshold {
		p.buckets = make(map[string]*rate.Limiter)
	}
	p.mu.Unlock()
}

// RateLimit throttles by client IP using the X-Real-IP header when chi's
// RealIP middleware has set it, falling back to the socket address.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool(rps, burst)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			pool.sweep()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.Header.Get("X-Real-IP")
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !pool.allow(ip) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
