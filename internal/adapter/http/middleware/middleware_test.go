package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/metrics"
)

func newTestMiddleware(buf *bytes.Buffer) *Middleware {
	return NewMiddleware("test", logger.New(buf, "test", logger.LevelDebug))
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	h := newTestMiddleware(&buf).Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected the panic to be logged, got %s", buf.String())
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := newTestMiddleware(&bytes.Buffer{}).RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = wrap.FromContext(r.Context()).RequestID
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a generated uuid, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("request id must be echoed back")
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != id {
		t.Fatalf("expected incoming id %s, got %s", id, seen)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	h := newTestMiddleware(&buf).Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))

	out := buf.String()
	if !strings.Contains(out, `"completed"`) || !strings.Contains(out, `"status":418`) {
		t.Fatalf("unexpected log output %s", out)
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /charts/{file}", func(w http.ResponseWriter, r *http.Request) {})
	h := newTestMiddleware(&bytes.Buffer{}).Metrics(mux)

	counter := metrics.HttpRequestsTotal.WithLabelValues("test", http.MethodGet, "GET /charts/{file}", "200")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/charts/hourly.png", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/charts/payment.png", nil))

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Fatalf("expected 2 requests on the route, got %v", got)
	}
}
