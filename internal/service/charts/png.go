package charts

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
)

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

// RenderPNG draws a figure as a PNG image.
func RenderPNG(fig Figure, theme Theme, size Size) ([]byte, error) {
	if len(fig.Data) == 0 || fig.Points() == 0 {
		return nil, types.ErrNoChartData
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch first := fig.Data[0]; {
	case first.Type == TracePie:
		err = pieChart(fig, theme, size).Render(chart.PNG, &buf)
	case first.Type == TraceBar:
		err = barChart(fig, theme, size).Render(chart.PNG, &buf)
	case first.Type == TraceScatter:
		var c chart.Chart
		c, err = xyChart(fig, theme, size)
		if err == nil {
			err = c.Render(chart.PNG, &buf)
		}
	default:
		err = fmt.Errorf("unsupported trace type %q", first.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %q: %w", fig.Layout.Title.Text, err)
	}

	return buf.Bytes(), nil
}

func xyChart(fig Figure, theme Theme, size Size) (chart.Chart, error) {
	series := make([]chart.Series, 0, len(fig.Data))
	xr, yr := newBounds(), newBounds()

	for i, tr := range fig.Data {
		xs := make([]float64, 0, len(tr.X))
		for _, v := range tr.X {
			f, ok := toFloat(v)
			if !ok {
				return chart.Chart{}, fmt.Errorf("x value %v is not numeric", v)
			}
			xs = append(xs, f)
			xr.add(f)
		}
		for _, y := range tr.Y {
			yr.add(y)
		}

		style := chart.Style{
			StrokeColor: parseColor(traceColor(tr, theme, i)),
			StrokeWidth: 2,
		}
		if tr.Line != nil && tr.Line.Width > 0 {
			style.StrokeWidth = tr.Line.Width
		}
		if tr.Mode == ModeMarkers {
			dot := 5.0
			if tr.Marker != nil && tr.Marker.Size > 0 {
				dot = tr.Marker.Size
			}
			style = chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dot / 2,
				DotColor:    parseColor(traceColor(tr, theme, i)),
			}
		}

		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: copyValues(tr.Y),
			Style:   style,
		})
	}

	c := chart.Chart{
		Title:      fig.Layout.Title.Text,
		TitleStyle: textStyle(theme),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{
			FillColor: parseColor(theme.PaperColor),
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: parseColor(theme.PlotColor)},
		XAxis: chart.XAxis{
			Name:      axisTitle(fig.Layout.XAxis),
			NameStyle: textStyle(theme),
			Style:     textStyle(theme),
			Range:     xr.padded(),
		},
		YAxis: chart.YAxis{
			Name:      axisTitle(fig.Layout.YAxis),
			NameStyle: textStyle(theme),
			Style:     textStyle(theme),
			Range:     yr.padded(),
		},
		Series: series,
	}
	if len(series) > 1 {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}

	return c, nil
}

func barChart(fig Figure, theme Theme, size Size) chart.BarChart {
	grouped := len(fig.Data) > 1
	var bars []chart.Value
	maxY := 0.0

	for i, tr := range fig.Data {
		color := parseColor(traceColor(tr, theme, i))
		for j, y := range tr.Y {
			label := fmt.Sprint(tr.X[j])
			if grouped {
				label = label + " " + tr.Name
			}
			bars = append(bars, chart.Value{
				Label: label,
				Value: y,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
			maxY = math.Max(maxY, y)
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	return chart.BarChart{
		Title:      fig.Layout.Title.Text,
		TitleStyle: textStyle(theme),
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth(size.Width, len(bars)),
		Background: chart.Style{
			FillColor: parseColor(theme.PaperColor),
			Padding:   chart.Box{Top: 48},
		},
		Canvas: chart.Style{FillColor: parseColor(theme.PlotColor)},
		XAxis:  textStyle(theme),
		YAxis: chart.YAxis{
			Name:      axisTitle(fig.Layout.YAxis),
			NameStyle: textStyle(theme),
			Style:     textStyle(theme),
			Range:     &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Bars: bars,
	}
}

func pieChart(fig Figure, theme Theme, size Size) chart.PieChart {
	tr := fig.Data[0]
	colors := theme.Palette
	if tr.Marker != nil && len(tr.Marker.Colors) > 0 {
		colors = tr.Marker.Colors
	}
	if len(colors) == 0 {
		colors = []string{theme.FontColor}
	}

	values := make([]chart.Value, 0, len(tr.Values))
	for i, v := range tr.Values {
		color := parseColor(colors[i%len(colors)])
		values = append(values, chart.Value{
			Label: tr.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: color, FontColor: parseColor(theme.FontColor)},
		})
	}

	return chart.PieChart{
		Title:      fig.Layout.Title.Text,
		TitleStyle: textStyle(theme),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{FillColor: parseColor(theme.PaperColor)},
		Canvas:     chart.Style{FillColor: parseColor(theme.PaperColor)},
		Values:     values,
	}
}

func traceColor(tr Trace, theme Theme, i int) string {
	switch {
	case tr.Line != nil && tr.Line.Color != "":
		return tr.Line.Color
	case tr.Marker != nil && tr.Marker.Color != "":
		return tr.Marker.Color
	}
	return theme.Color(i)
}

func textStyle(theme Theme) chart.Style {
	return chart.Style{
		FontColor: parseColor(theme.FontColor),
		FontSize:  float64(theme.FontSize),
	}
}

func axisTitle(a *Axis) string {
	if a == nil {
		return ""
	}
	return a.Title.Text
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 0
	}
	w := width / (bars * 2)
	return max(4, min(w, 80))
}

// parseColor reads #rgb and #rrggbb colors.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

type bounds struct {
	min, max float64
}

func newBounds() *bounds {
	return &bounds{min: math.Inf(1), max: math.Inf(-1)}
}

func (b *bounds) add(v float64) {
	b.min = math.Min(b.min, v)
	b.max = math.Max(b.max, v)
}

// padded widens the range by 5% on each side, and by 1 when all values are equal.
func (b *bounds) padded() *chart.ContinuousRange {
	pad := (b.max - b.min) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: b.min - pad, Max: b.max + pad}
}
