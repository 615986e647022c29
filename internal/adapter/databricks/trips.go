package databricks

import (
	"context"
	"fmt"
	"strings"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
)

type StatementExecutor interface {
	Execute(ctx context.Context, statement string) (*Result, error)
}

// TripRepo reads raw trip rows from the trips table.
type TripRepo struct {
	exec  StatementExecutor
	table string
	limit int
	l     logger.Logger
}

func NewTripRepo(exec StatementExecutor, table string, limit int, l logger.Logger) *TripRepo {
	return &TripRepo{
		exec:  exec,
		table: table,
		limit: limit,
		l:     l,
	}
}

// TripsStatement selects the trip columns in schema order. Trips without a
// rate code or fare are left out by the warehouse.
func TripsStatement(table string, limit int) string {
	var sb strings.Builder
	sb.WriteString("select trip_distance, total_amount as Total_Amt, pickup_ts as Trip_Pickup_DateTime, ")
	sb.WriteString("payment_type as Payment_Type, rate_code as Rate_Code from ")
	sb.WriteString(table)
	sb.WriteString(" where Rate_Code is not null and total_amount is not null")
	if limit > 0 {
		fmt.Fprintf(&sb, " limit %d", limit)
	}
	sb.WriteString(";")
	return sb.String()
}

// FetchTrips returns the raw trip rows. The result must have one column per
// schema field; the rows themselves are checked by the aggregation pipeline.
func (r *TripRepo) FetchTrips(ctx context.Context, schema models.Schema) ([]models.RawRow, error) {
	const op = "TripRepo.FetchTrips"

	res, err := r.exec.Execute(ctx, TripsStatement(r.table, r.limit))
	if err != nil {
		return nil, err
	}
	ctx = wrap.WithStatementID(ctx, res.StatementID)

	if res.ColumnCount != 0 && res.ColumnCount != len(schema) {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: got %d columns, expected %d", op, types.ErrMalformedResponse, res.ColumnCount, len(schema)))
	}

	if res.Truncated {
		r.l.Warn(ctx, "statement result was truncated by the warehouse", "rows", len(res.Rows))
	}
	r.l.Debug(ctx, "fetched trips", "rows", len(res.Rows))

	return res.Rows, nil
}
