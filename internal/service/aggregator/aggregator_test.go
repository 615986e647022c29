package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

// row builds a raw row the way the query service sends it: every value as
// text, nil as null.
func row(values ...any) models.RawRow {
	r := make(models.RawRow, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			r[i] = models.NullCell()
		case string:
			r[i] = models.NewCell(x)
		case int:
			r[i] = models.NewCell(strconv.Itoa(x))
		case float64:
			r[i] = models.NewCell(strconv.FormatFloat(x, 'f', -1, 64))
		default:
			panic("unsupported test value")
		}
	}
	return r
}

func scenarioRows() []models.RawRow {
	return []models.RawRow{
		row(2.5, 10.0, "2024-01-01T08:15:00", "Cash", 1),
		row(1.0, 20.0, "2024-01-01T08:45:00", "Card", 1),
		row(3.0, -5.0, "2024-01-01T09:00:00", "Cash", 2),
	}
}

func newTestAggregator() *Aggregator {
	return New(logger.InitLogger("test", logger.LevelError))
}

func TestRun_Scenario(t *testing.T) {
	agg, err := newTestAggregator().Run(context.Background(), scenarioRows(), models.TripSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agg.TotalRows != 3 || agg.FilteredRows != 2 {
		t.Fatalf("expected 3 rows and 2 filtered, got %d and %d", agg.TotalRows, agg.FilteredRows)
	}

	if !reflect.DeepEqual(agg.ByHour.Keys, []int{8}) || !reflect.DeepEqual(agg.ByHour.Values, []float64{15}) {
		t.Fatalf("unexpected hourly series %+v", agg.ByHour)
	}

	if !reflect.DeepEqual(agg.ByPaymentType.Keys, []string{"Card", "Cash"}) {
		t.Fatalf("payment types must be sorted, got %v", agg.ByPaymentType.Keys)
	}
	if v, _ := agg.ByPaymentType.Value("Cash"); v != 10 {
		t.Fatalf("expected Cash mean 10, got %v", v)
	}
	if v, _ := agg.ByPaymentType.Value("Card"); v != 20 {
		t.Fatalf("expected Card mean 20, got %v", v)
	}

	if !reflect.DeepEqual(agg.ByRateCode.Keys, []models.RateCode{models.NewRateCode(1)}) || agg.ByRateCode.Values[0] != 15 {
		t.Fatalf("unexpected rate code series %+v", agg.ByRateCode)
	}

	pairs := map[models.RatePaymentKey]float64{
		{RateCode: models.NewRateCode(1), PaymentType: "Cash"}: 10,
		{RateCode: models.NewRateCode(1), PaymentType: "Card"}: 20,
	}
	if agg.ByRateCodeAndPayment.Len() != len(pairs) {
		t.Fatalf("expected %d pairs, got %+v", len(pairs), agg.ByRateCodeAndPayment)
	}
	for k, want := range pairs {
		if got, ok := agg.ByRateCodeAndPayment.Value(k); !ok || got != want {
			t.Fatalf("pair %v: got %v (%v), want %v", k, got, ok, want)
		}
	}

	want := models.Scatter{Distances: []float64{2.5, 1.0}, Fares: []float64{10, 20}}
	if !reflect.DeepEqual(agg.Scatter, want) {
		t.Fatalf("unexpected scatter %+v", agg.Scatter)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	agg, err := newTestAggregator().Run(context.Background(), nil, models.TripSchema())
	if err != nil {
		t.Fatalf("empty input must not fail: %v", err)
	}

	if agg.ByHour.Len() != 0 || agg.ByPaymentType.Len() != 0 || agg.ByRateCode.Len() != 0 ||
		agg.ByRateCodeAndPayment.Len() != 0 || agg.Scatter.Len() != 0 {
		t.Fatalf("expected empty groupings, got %+v", agg)
	}
	if agg.ByHour.Keys == nil || agg.ByHour.Values == nil || agg.Scatter.Fares == nil {
		t.Fatalf("empty groupings must be empty slices, not nil")
	}
}

func TestRun_AllTripsFiltered(t *testing.T) {
	rows := []models.RawRow{
		row(1.0, 0.0, "2024-01-01T08:15:00", "Cash", 1),
		row(1.0, -3.0, "2024-01-01T09:15:00", "Card", 2),
	}
	agg, err := newTestAggregator().Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.FilteredRows != 0 || agg.ByHour.Len() != 0 {
		t.Fatalf("expected every trip to be dropped, got %+v", agg)
	}
}

func TestRun_MissingRateCodeIsOwnGroup(t *testing.T) {
	rows := []models.RawRow{
		row(1.0, 10.0, "2024-01-01T08:00:00", "Cash", nil),
		row(1.0, 30.0, "2024-01-01T08:00:00", "Cash", "n/a"),
		row(1.0, 40.0, "2024-01-01T08:00:00", "Cash", 5),
		row(1.0, 50.0, "2024-01-01T08:00:00", "Card", 1),
	}
	agg, err := newTestAggregator().Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKeys := []models.RateCode{models.NewRateCode(1), models.NewRateCode(5), models.MissingRateCode}
	if !reflect.DeepEqual(agg.ByRateCode.Keys, wantKeys) {
		t.Fatalf("expected keys %v, got %v", wantKeys, agg.ByRateCode.Keys)
	}
	if v, _ := agg.ByRateCode.Value(models.MissingRateCode); v != 20 {
		t.Fatalf("null and unparseable rate codes must share one group, got mean %v", v)
	}
	if agg.ByRateCode.Counts[2] != 2 {
		t.Fatalf("expected 2 trips in missing group, got %d", agg.ByRateCode.Counts[2])
	}
}

func TestRun_HugeFaresStayFinite(t *testing.T) {
	rows := []models.RawRow{
		row(1.0, 1e308, "2024-01-01T08:15:00", "Cash", 1),
		row(2.0, 1e308, "2024-01-01T08:45:00", "Cash", 1),
	}

	agg, err := newTestAggregator().Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, values := range map[string][]float64{
		"hour":         agg.ByHour.Values,
		"payment":      agg.ByPaymentType.Values,
		"rate code":    agg.ByRateCode.Values,
		"rate/payment": agg.ByRateCodeAndPayment.Values,
	} {
		if len(values) != 1 || values[0] != 1e308 {
			t.Fatalf("%s: expected mean 1e308, got %v", name, values)
		}
	}

	if _, err := json.Marshal(agg); err != nil {
		t.Fatalf("aggregates must encode: %v", err)
	}
}

func TestRun_Idempotent(t *testing.T) {
	a := newTestAggregator()
	rows := scenarioRows()

	first, err := a.Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := a.Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\n%+v\n%+v", first, second)
	}
}

func TestRun_HourBucketsCoverFilteredTrips(t *testing.T) {
	var rows []models.RawRow
	for i := 0; i < 100; i++ {
		ts := "2024-03-0" + strconv.Itoa(1+i%9) + "T" + pad2(i%24) + ":30:00Z"
		rows = append(rows, row(float64(i)/10, float64(i%7)-1, ts, "Cash", 1))
	}

	agg, err := newTestAggregator().Run(context.Background(), rows, models.TripSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total := 0
	for i, h := range agg.ByHour.Keys {
		if h < 0 || h > 23 {
			t.Fatalf("hour %d out of range", h)
		}
		if i > 0 && agg.ByHour.Keys[i-1] >= h {
			t.Fatalf("hours must be strictly ascending: %v", agg.ByHour.Keys)
		}
		total += agg.ByHour.Counts[i]
	}
	if total != agg.FilteredRows {
		t.Fatalf("hour counts sum to %d, filtered rows %d", total, agg.FilteredRows)
	}
	for _, fare := range agg.Scatter.Fares {
		if fare <= 0 {
			t.Fatalf("filtered fare %v must be positive", fare)
		}
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		rows   []models.RawRow
		schema models.Schema
		want   error
	}{
		{
			name:   "short row",
			rows:   []models.RawRow{row(1.0, 2.0, "2024-01-01T08:00:00", "Cash")},
			schema: models.TripSchema(),
			want:   types.ErrMalformedResponse,
		},
		{
			name:   "unparseable fare fails the column",
			rows:   append(scenarioRows(), row(1.0, "abc", "2024-01-01T08:00:00", "Cash", 1)),
			schema: models.TripSchema(),
			want:   types.ErrCoercion,
		},
		{
			name:   "null fare",
			rows:   []models.RawRow{row(1.0, nil, "2024-01-01T08:00:00", "Cash", 1)},
			schema: models.TripSchema(),
			want:   types.ErrCoercion,
		},
		{
			name:   "non-finite distance",
			rows:   []models.RawRow{row("NaN", 2.0, "2024-01-01T08:00:00", "Cash", 1)},
			schema: models.TripSchema(),
			want:   types.ErrCoercion,
		},
		{
			name:   "bad timestamp",
			rows:   []models.RawRow{row(1.0, 2.0, "yesterday", "Cash", 1)},
			schema: models.TripSchema(),
			want:   types.ErrCoercion,
		},
		{
			name:   "null payment type",
			rows:   []models.RawRow{row(1.0, 2.0, "2024-01-01T08:00:00", nil, 1)},
			schema: models.TripSchema(),
			want:   types.ErrCoercion,
		},
		{
			name:   "schema without rate code",
			rows:   nil,
			schema: models.TripSchema()[:4],
			want:   types.ErrMalformedResponse,
		},
		{
			name: "unknown semantic type",
			rows: nil,
			schema: models.Schema{
				{Name: models.FieldTripDistance, Type: "decimal"},
			},
			want: types.ErrMalformedResponse,
		},
		{
			name: "declared type does not fit field",
			rows: []models.RawRow{row(1.0, 2.0, "2024-01-01T08:00:00", "Cash", 1)},
			schema: models.Schema{
				{Name: models.FieldTripDistance, Type: types.TypeFloat},
				{Name: models.FieldTotalAmount, Type: types.TypeString},
				{Name: models.FieldPickupDateTime, Type: types.TypeDateTime},
				{Name: models.FieldPaymentType, Type: types.TypeString},
				{Name: models.FieldRateCode, Type: types.TypeNullableFloat},
			},
			want: types.ErrCoercion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg, err := newTestAggregator().Run(context.Background(), tt.rows, tt.schema)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if agg != nil {
				t.Fatalf("no partial result expected, got %+v", agg)
			}
		})
	}
}
