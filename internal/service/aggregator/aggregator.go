package aggregator

import (
	"context"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/metrics"
)

type Aggregator struct {
	l logger.Logger
}

func New(l logger.Logger) *Aggregator {
	return &Aggregator{
		l: l,
	}
}

// Run coerces the raw rows, drops trips without a positive fare and computes
// the grouped summaries. It keeps no state between calls.
func (a *Aggregator) Run(ctx context.Context, rows []models.RawRow, schema models.Schema) (*models.Aggregates, error) {
	ctx = wrap.WithAction(ctx, types.ActionAggregation)

	trips, err := Coerce(rows, schema)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	filtered := Filter(trips)
	metrics.RecordAggregation(len(trips), len(filtered))

	if dropped := len(trips) - len(filtered); dropped > 0 {
		a.l.Debug(ctx, "dropped trips without positive fare", "dropped", dropped)
	}

	agg := Aggregate(filtered)
	agg.TotalRows = len(trips)

	a.l.Debug(ctx, "aggregated trips",
		"rows", agg.TotalRows,
		"filtered", agg.FilteredRows,
		"hours", agg.ByHour.Len(),
		"payment_types", agg.ByPaymentType.Len(),
		"rate_codes", agg.ByRateCode.Len(),
	)

	return agg, nil
}

// Aggregate computes the grouped summaries of already filtered trips.
func Aggregate(trips []models.Trip) *models.Aggregates {
	return &models.Aggregates{
		ByHour:               ByHour(trips),
		ByPaymentType:        ByPaymentType(trips),
		ByRateCode:           ByRateCode(trips),
		ByRateCodeAndPayment: ByRateCodeAndPayment(trips),
		Scatter:              DistanceVsFare(trips),
		TotalRows:            len(trips),
		FilteredRows:         len(trips),
	}
}
