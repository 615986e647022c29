package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Query service metrics
	StatementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sql_statements_total",
			Help: "Total number of statements sent to the query service",
		},
		[]string{"status"},
	)

	StatementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sql_statement_duration_seconds",
			Help:    "Query service round trip in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"status"},
	)

	// Aggregation metrics
	TripRowsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trip_rows_fetched_total",
			Help: "Total number of trip rows coerced by the aggregation pipeline",
		},
	)

	TripRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trip_rows_dropped_total",
			Help: "Total number of trip rows dropped for a non-positive fare",
		},
	)

	ChartRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_renders_total",
			Help: "Total number of PNG chart renders",
		},
		[]string{"chart", "status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordStatement records one query service call
func RecordStatement(err error, duration time.Duration) {
	status := statusOf(err)
	StatementsTotal.WithLabelValues(status).Inc()
	StatementDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordAggregation records how many coerced rows survived the fare filter
func RecordAggregation(total, kept int) {
	TripRowsFetched.Add(float64(total))
	if dropped := total - kept; dropped > 0 {
		TripRowsDropped.Add(float64(dropped))
	}
}

// RecordChartRender records a PNG render of a chart
func RecordChartRender(chart string, err error) {
	ChartRendersTotal.WithLabelValues(chart, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
