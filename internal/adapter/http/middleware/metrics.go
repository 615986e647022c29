package middleware

import (
	"net/http"
	"time"

	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/metrics"
)

// Metrics records HTTP metrics. Requests are labelled by the matched route
// pattern, so it must wrap the mux directly.
func (m *Middleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip metrics endpoint to avoid recursion
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		metrics.HttpRequestsInFlight.WithLabelValues(m.service).Inc()
		defer metrics.HttpRequestsInFlight.WithLabelValues(m.service).Dec()

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPMetrics(m.service, r.Method, route, rw.Status(), time.Since(start))
	})
}
