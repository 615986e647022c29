package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Temutjin2k/taxi-fare-dashboard/config"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/adapter/databricks"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/adapter/http/server"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/aggregator"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/charts"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/dashboard"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

var ErrServiceNotInitialized = errors.New("service not initialized")

type App struct {
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

// NewApplication wires the query client, the aggregation pipeline and the
// HTTP server.
func NewApplication(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	client := databricks.New(cfg.Databricks)
	tripRepo := databricks.NewTripRepo(client, cfg.Databricks.TableName(), cfg.Databricks.RowLimit, log)

	theme := charts.NewTheme(cfg.Chart.Theme, cfg.Chart.Palette, cfg.Chart.FontSize)
	size := charts.Size{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	dashboardService := dashboard.NewService(tripRepo, aggregator.New(log), theme, size, log)

	httpServer, err := server.New(cfg, dashboardService, log)
	if err != nil {
		log.Error(ctx, "Failed to setup http server", err)
		return nil, fmt.Errorf("failed to init service: %w", err)
	}

	return &App{
		httpServer: httpServer,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Run serves until SIGINT or SIGTERM, or until the server fails.
func (a *App) Run(ctx context.Context) error {
	if a.httpServer == nil {
		return ErrServiceNotInitialized
	}

	errCh := make(chan error, 1)

	a.httpServer.Run(ctx, errCh)
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "dashboard service closed")
	}()

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "dashboard service started", "theme", a.cfg.Chart.Theme, "table", a.cfg.Databricks.TableName())

	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shuting down application", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	if err := a.httpServer.Stop(context.WithoutCancel(ctx)); err != nil {
		a.log.Warn(ctx, "Failed to gracefully close http server", "error", err.Error())
	}
}
