package dashboard

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/charts"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/metrics"
)

// Service runs the fetch, aggregate, build pipeline once per call.
type Service struct {
	source TripSource
	agg    Aggregator
	theme  charts.Theme
	size   charts.Size
	schema models.Schema
	l      logger.Logger
}

func NewService(source TripSource, agg Aggregator, theme charts.Theme, size charts.Size, l logger.Logger) *Service {
	return &Service{
		source: source,
		agg:    agg,
		theme:  theme,
		size:   size,
		schema: models.TripSchema(),
		l:      l,
	}
}

// Aggregates fetches the trips and returns their grouped summaries.
func (s *Service) Aggregates(ctx context.Context) (*models.Aggregates, error) {
	const op = "Service.Aggregates"

	rows, err := s.source.FetchTrips(ctx, s.schema)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to fetch trips: %w", op, err)
	}

	agg, err := s.agg.Run(ctx, rows, s.schema)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to aggregate trips: %w", op, err)
	}

	return agg, nil
}

// Charts returns every dashboard chart in page order.
func (s *Service) Charts(ctx context.Context) ([]charts.Chart, error) {
	agg, err := s.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	return charts.Build(agg, s.theme), nil
}

// ChartPNG renders one chart as a PNG image.
func (s *Service) ChartPNG(ctx context.Context, name types.ChartName) ([]byte, error) {
	const op = "Service.ChartPNG"

	if !name.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, types.ErrUnknownChart, name)
	}

	agg, err := s.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	fig, err := charts.BuildChart(name, agg, s.theme)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	img, err := charts.RenderPNG(fig, s.theme, s.size)
	metrics.RecordChartRender(name.String(), err)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionChartRender)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	s.l.Debug(ctx, "chart rendered", "chart", name.String(), "bytes", len(img))

	return img, nil
}

// Theme returns the theme the charts are built with.
func (s *Service) Theme() charts.Theme {
	return s.theme
}
