package dashboard

import (
	"context"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
)

type TripSource interface {
	FetchTrips(ctx context.Context, schema models.Schema) ([]models.RawRow, error)
}

type Aggregator interface {
	Run(ctx context.Context, rows []models.RawRow, schema models.Schema) (*models.Aggregates, error)
}
