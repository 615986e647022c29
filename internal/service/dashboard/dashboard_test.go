package dashboard

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/aggregator"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/charts"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

type fakeSource struct {
	rows  []models.RawRow
	err   error
	calls int
}

func (f *fakeSource) FetchTrips(_ context.Context, _ models.Schema) ([]models.RawRow, error) {
	f.calls++
	return f.rows, f.err
}

func cells(values ...string) models.RawRow {
	r := make(models.RawRow, len(values))
	for i, v := range values {
		r[i] = models.NewCell(v)
	}
	return r
}

func newTestService(src TripSource) *Service {
	l := logger.InitLogger("test", logger.LevelError)
	theme := charts.NewTheme("plotly_dark", []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}, 14)
	return NewService(src, aggregator.New(l), theme, charts.Size{Width: 640, Height: 400}, l)
}

func scenarioSource() *fakeSource {
	return &fakeSource{rows: []models.RawRow{
		cells("2.5", "10.0", "2024-01-01T08:15:00", "Cash", "1"),
		cells("1.0", "20.0", "2024-01-01T08:45:00", "Card", "1"),
		cells("3.0", "-5.0", "2024-01-01T09:00:00", "Cash", "2"),
	}}
}

func TestCharts(t *testing.T) {
	src := scenarioSource()
	got, err := newTestService(src).Charts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(types.Charts) {
		t.Fatalf("expected %d charts, got %d", len(types.Charts), len(got))
	}
	if src.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", src.calls)
	}
}

func TestAggregates_FetchError(t *testing.T) {
	src := &fakeSource{err: types.ErrQueryService}
	_, err := newTestService(src).Aggregates(context.Background())
	if !errors.Is(err, types.ErrQueryService) {
		t.Fatalf("expected ErrQueryService, got %v", err)
	}
}

func TestAggregates_CoercionError(t *testing.T) {
	src := &fakeSource{rows: []models.RawRow{cells("x", "10", "2024-01-01T08:15:00", "Cash", "1")}}
	_, err := newTestService(src).Aggregates(context.Background())
	if !errors.Is(err, types.ErrCoercion) {
		t.Fatalf("expected ErrCoercion, got %v", err)
	}
}

func TestChartPNG(t *testing.T) {
	img, err := newTestService(scenarioSource()).ChartPNG(context.Background(), types.ChartRateCodePayment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Fatalf("expected a PNG")
	}
}

func TestChartPNG_UnknownChartSkipsFetch(t *testing.T) {
	src := scenarioSource()
	_, err := newTestService(src).ChartPNG(context.Background(), "nope")
	if !errors.Is(err, types.ErrUnknownChart) {
		t.Fatalf("expected ErrUnknownChart, got %v", err)
	}
	if src.calls != 0 {
		t.Fatalf("unknown chart must not hit the query service")
	}
}

func TestChartPNG_NoData(t *testing.T) {
	_, err := newTestService(&fakeSource{}).ChartPNG(context.Background(), types.ChartHourly)
	if !errors.Is(err, types.ErrNoChartData) {
		t.Fatalf("expected ErrNoChartData, got %v", err)
	}
}
