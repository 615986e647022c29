package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Temutjin2k/taxi-fare-dashboard/docs"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)

	setupSwaggerRoutes(a.mux)
	setupMetricsRoute(a.mux)
	setupDashboardRoutes(a.mux, a.routes)
}

// setupDashboardRoutes setups the page, the JSON API and the chart images
func setupDashboardRoutes(mux *http.ServeMux, routes *handlers) {
	mux.HandleFunc("GET /{$}", routes.dashboard.Index)                    // HTML dashboard
	mux.HandleFunc("GET /api/v1/charts", routes.dashboard.Charts)         // Plotly figures
	mux.HandleFunc("GET /api/v1/aggregates", routes.dashboard.Aggregates) // grouped summaries
	mux.HandleFunc("GET /charts/{file}", routes.dashboard.ChartPNG)       // one chart as PNG
}

// setupSwaggerRoutes configures Swagger UI endpoints
func setupSwaggerRoutes(mux *http.ServeMux) {
	swaggerURL := httpSwagger.InstanceName(docs.SwaggerInfodashboard.InstanceName())
	mux.HandleFunc("/swagger/", httpSwagger.Handler(swaggerURL))
}

// setupMetricsRoute configures the Prometheus metrics endpoint
func setupMetricsRoute(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.Handler())
}
