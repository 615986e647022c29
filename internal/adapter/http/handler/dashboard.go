package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/service/charts"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/hasher"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
	wrap "github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger/wrapper"
)

const (
	pageTitle = "NYC Taxi Fare Dashboard"
	plotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type DashboardService interface {
	Aggregates(ctx context.Context) (*models.Aggregates, error)
	Charts(ctx context.Context) ([]charts.Chart, error)
	ChartPNG(ctx context.Context, name types.ChartName) ([]byte, error)
	Theme() charts.Theme
}

type Dashboard struct {
	s DashboardService
	l logger.Logger
}

func NewDashboard(s DashboardService, l logger.Logger) *Dashboard {
	return &Dashboard{
		s: s,
		l: l,
	}
}

type indexPage struct {
	Title     string
	PlotlyURL string
	Theme     charts.Theme
	Charts    []charts.Chart
}

// Index godoc
// @Summary      Dashboard page
// @Description  Fetches the trips, aggregates them and renders the five charts as an HTML page
// @Tags         Dashboard
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      502  {object}  map[string]any  "Query service failure or malformed result"
// @Failure      500  {object}  map[string]any  "Internal server error"
// @Router       / [get]
func (h *Dashboard) Index(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_index")

	list, err := h.s.Charts(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to build charts", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	var buf bytes.Buffer
	page := indexPage{
		Title:     pageTitle,
		PlotlyURL: plotlyURL,
		Theme:     h.s.Theme(),
		Charts:    list,
	}
	if err := indexTemplate.Execute(&buf, page); err != nil {
		h.l.Error(ctx, "failed to render page", err)
		internalErrorResponse(w, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Charts godoc
// @Summary      Chart figures
// @Description  Returns the five dashboard charts as Plotly figures keyed by chart name
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]any  "charts: name -> figure"
// @Failure      502  {object}  map[string]any  "Query service failure or malformed result"
// @Failure      500  {object}  map[string]any  "Internal server error"
// @Router       /api/v1/charts [get]
func (h *Dashboard) Charts(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_charts")

	list, err := h.s.Charts(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to build charts", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	figures := make(map[types.ChartName]charts.Figure, len(list))
	for _, c := range list {
		figures[c.Name] = c.Figure
	}

	if err := writeJSON(w, http.StatusOK, envelope{"charts": figures}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// Aggregates godoc
// @Summary      Grouped summaries
// @Description  Returns the mean fare per hour, payment type, rate code and rate code by payment type, plus the distance and fare pairs
// @Tags         Dashboard
// @Produce      json
// @Success      200  {object}  map[string]any  "aggregates"
// @Failure      502  {object}  map[string]any  "Query service failure or malformed result"
// @Failure      500  {object}  map[string]any  "Internal server error"
// @Router       /api/v1/aggregates [get]
func (h *Dashboard) Aggregates(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_aggregates")

	agg, err := h.s.Aggregates(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to aggregate trips", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	h.l.Debug(ctx, "aggregated trips", "rows", agg.TotalRows, "filtered", agg.FilteredRows)

	if err := writeJSON(w, http.StatusOK, envelope{"aggregates": agg}, nil); err != nil {
		h.l.Error(ctx, "failed to write response", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ChartPNG godoc
// @Summary      Chart image
// @Description  Renders one chart as a PNG image
// @Tags         Dashboard
// @Produce      png
// @Param        file  path  string  true  "chart file"  Enums(hourly.png, payment.png, ratecode.png, distance.png, ratecode_payment.png)
// @Success      200  {file}    binary
// @Success      304  {string}  string  "Not modified"
// @Failure      404  {object}  map[string]any  "Unknown chart or chart without data"
// @Failure      502  {object}  map[string]any  "Query service failure or malformed result"
// @Router       /charts/{file} [get]
func (h *Dashboard) ChartPNG(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "dashboard_chart_png")

	name, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok {
		notFoundResponse(w, "chart images are served as .png")
		return
	}

	img, err := h.s.ChartPNG(ctx, types.ChartName(name))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to render chart", err, "chart", name)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	etag := hasher.ETag(img)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
