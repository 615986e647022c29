package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Temutjin2k/taxi-fare-dashboard/config"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/adapter/http/handler"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/adapter/http/middleware"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers // routes/handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health    *handler.Health
	dashboard *handler.Dashboard
}

func New(cfg config.Config, dashboardService handler.DashboardService, logger logger.Logger) (*API, error) {
	if dashboardService == nil {
		return nil, errors.New("dashboard service is required")
	}

	api := &API{
		mux: http.NewServeMux(),
		routes: &handlers{
			health:    handler.NewHealth(cfg.Log.Service, logger),
			dashboard: handler.NewDashboard(dashboardService, logger),
		},
		m:    middleware.NewMiddleware(cfg.Log.Service, logger),
		addr: cfg.Server.Addr(),
		cfg:  cfg,
		log:  logger,
	}

	api.setupRoutes()

	api.server = &http.Server{
		Addr:         api.addr,
		Handler:      api.withMiddleware(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// Handler returns the routed handler with every middleware applied.
func (a *API) Handler() http.Handler {
	return a.server.Handler
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}
