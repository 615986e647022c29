package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/charts"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

type fakeDashboard struct {
	agg    *models.Aggregates
	charts []charts.Chart
	png    []byte
	err    error
}

func (f *fakeDashboard) Aggregates(context.Context) (*models.Aggregates, error) {
	return f.agg, f.err
}

func (f *fakeDashboard) Charts(context.Context) ([]charts.Chart, error) {
	return f.charts, f.err
}

func (f *fakeDashboard) ChartPNG(_ context.Context, name types.ChartName) ([]byte, error) {
	if !name.Valid() {
		return nil, types.ErrUnknownChart
	}
	return f.png, f.err
}

func (f *fakeDashboard) Theme() charts.Theme {
	return charts.NewTheme("plotly_dark", []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"}, 14)
}

func newTestMux(s DashboardService) *http.ServeMux {
	h := NewDashboard(s, logger.InitLogger("test", logger.LevelError))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /api/v1/charts", h.Charts)
	mux.HandleFunc("GET /api/v1/aggregates", h.Aggregates)
	mux.HandleFunc("GET /charts/{file}", h.ChartPNG)
	return mux
}

func do(mux http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func testCharts() []charts.Chart {
	return []charts.Chart{{
		Name: types.ChartHourly,
		Figure: charts.Figure{
			Data:   []charts.Trace{{Type: charts.TraceScatter, Mode: charts.ModeLines, X: []any{8}, Y: []float64{15}}},
			Layout: charts.Layout{Title: charts.Text{Text: "Average Fare Amount by Pickup Hour"}},
		},
	}}
}

func TestIndex(t *testing.T) {
	rec := do(newTestMux(&fakeDashboard{charts: testCharts()}), "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="chart-hourly"`, "Plotly.newPlot", "Average Fare Amount by Pickup Hour", `"y":[15]`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestCharts(t *testing.T) {
	rec := do(newTestMux(&fakeDashboard{charts: testCharts()}), "/api/v1/charts", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Charts map[string]charts.Figure `json:"charts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fig, ok := resp.Charts["hourly"]; !ok || len(fig.Data) != 1 {
		t.Fatalf("unexpected charts %+v", resp.Charts)
	}
}

func TestAggregates(t *testing.T) {
	agg := &models.Aggregates{
		ByHour:       models.NewSeries[int](0),
		ByRateCode:   models.NewSeries[models.RateCode](0),
		TotalRows:    3,
		FilteredRows: 2,
	}
	agg.ByHour.Append(8, 15, 2)
	agg.ByRateCode.Append(models.MissingRateCode, 12, 1)

	rec := do(newTestMux(&fakeDashboard{agg: agg}), "/api/v1/aggregates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`"filtered_rows": 2`, `"missing"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestChartPNG(t *testing.T) {
	png := []byte("\x89PNG fake")
	mux := newTestMux(&fakeDashboard{png: png})

	rec := do(mux, "/charts/payment.png", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "image/png" || rec.Body.String() != string(png) {
		t.Fatalf("unexpected response %q", rec.Body)
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag")
	}
	rec = do(mux, "/charts/payment.png", http.Header{"If-None-Match": {etag}})
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec.Code)
	}
}

func TestChartPNG_NotFound(t *testing.T) {
	mux := newTestMux(&fakeDashboard{png: []byte("x")})

	for _, target := range []string{"/charts/nope.png", "/charts/hourly", "/charts/hourly.svg"} {
		if rec := do(mux, target, nil); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rec.Code)
		}
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("fetch: %w", types.ErrQueryService), http.StatusBadGateway},
		{fmt.Errorf("run: %w", types.ErrCoercion), http.StatusBadGateway},
		{types.ErrMalformedResponse, http.StatusBadGateway},
		{types.ErrStatementFailed, http.StatusBadGateway},
		{context.Canceled, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %w", types.ErrQueryService, context.Canceled), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{types.ErrNoChartData, http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := do(newTestMux(&fakeDashboard{err: tt.err}), "/api/v1/charts", nil)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("expected an error envelope, got %s", rec.Body)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealth("dashboard", logger.InitLogger("test", logger.LevelError)).
		HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "available") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body)
	}
}
