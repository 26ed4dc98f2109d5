package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector feeds the counters behind the /metrics endpoint. The
// counters live on the App so a restart resets them with the process.
type MetricsCollector struct {
	requests *atomic.Int64
	errors   *atomic.Int64
}

func NewMetricsCollector(requests, errors *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{requests: requests, errors: errors}
}

// Middleware counts every request and every response with a 4xx or 5xx
// status.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requests.Add(1)

		sr := record(w)
		next.ServeHTTP(sr, r)

		if sr.status >= 400 {
			mc.errors.Add(1)
		}
	})
}
