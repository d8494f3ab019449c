package httpx

import (
	"net/http"
	"time"

	"github.com/edunexa/academy-api/internal/observability/metrics"
	"github.com/edunexa/academy-api/internal/observability/statsd"
)

// RequestMetrics returns a middleware that emits request count and latency
// metrics to the configured sink. A nil sink disables emission.
func RequestMetrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			metrics.EmitRequest(sink, metrics.RequestMetric{
				Method:   r.Method,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}
