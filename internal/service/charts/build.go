package charts

import (
	"fmt"

	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/models"
	"github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
)

const (
	axisAverageFare = "Average Fare Amount"
	legendFontSize  = 12
)

// Chart is a named figure of the dashboard.
type Chart struct {
	Name   types.ChartName `json:"name"`
	Figure Figure          `json:"figure"`
}

type builder func(*models.Aggregates, Theme) Figure

var builders = map[types.ChartName]builder{
	types.ChartHourly:          HourlyFare,
	types.ChartPayment:         PaymentTypeFare,
	types.ChartRateCode:        RateCodeFare,
	types.ChartDistance:        DistanceVsFare,
	types.ChartRateCodePayment: RateCodeByPaymentFare,
}

// Build returns every dashboard chart in page order.
func Build(agg *models.Aggregates, theme Theme) []Chart {
	out := make([]Chart, 0, len(types.Charts))
	for _, name := range types.Charts {
		out = append(out, Chart{Name: name, Figure: builders[name](agg, theme)})
	}
	return out
}

// BuildChart returns a single chart.
func BuildChart(name types.ChartName, agg *models.Aggregates, theme Theme) (Figure, error) {
	build, ok := builders[name]
	if !ok {
		return Figure{}, fmt.Errorf("%w: %q", types.ErrUnknownChart, name)
	}
	return build(agg, theme), nil
}

// HourlyFare is a line of the mean fare per pickup hour.
func HourlyFare(agg *models.Aggregates, theme Theme) Figure {
	x := make([]any, len(agg.ByHour.Keys))
	for i, h := range agg.ByHour.Keys {
		x[i] = h
	}

	return Figure{
		Data: []Trace{{
			Type: TraceScatter,
			Mode: ModeLines,
			X:    x,
			Y:    copyValues(agg.ByHour.Values),
			Line: &Line{Color: theme.Color(0), Width: 3},
		}},
		Layout: theme.layout("Average Fare Amount by Pickup Hour", "Pickup Hour", axisAverageFare),
	}
}

// PaymentTypeFare is a bar per payment type.
func PaymentTypeFare(agg *models.Aggregates, theme Theme) Figure {
	x := make([]any, len(agg.ByPaymentType.Keys))
	for i, p := range agg.ByPaymentType.Keys {
		x[i] = p
	}

	layout := theme.layout("Average Fare Amount by Payment Type", "Payment Type", axisAverageFare)
	layout.XAxis.Type = "category"

	return Figure{
		Data: []Trace{{
			Type:   TraceBar,
			X:      x,
			Y:      copyValues(agg.ByPaymentType.Values),
			Marker: &Marker{Color: theme.Color(1)},
		}},
		Layout: layout,
	}
}

// RateCodeFare is a pie of the mean fare per rate code.
func RateCodeFare(agg *models.Aggregates, theme Theme) Figure {
	labels := make([]string, len(agg.ByRateCode.Keys))
	for i, r := range agg.ByRateCode.Keys {
		labels[i] = r.String()
	}

	layout := theme.layout("Average Fare Amount by Rate Code", "", "")
	layout.XAxis, layout.YAxis = nil, nil

	return Figure{
		Data: []Trace{{
			Type:   TracePie,
			Labels: labels,
			Values: copyValues(agg.ByRateCode.Values),
			Marker: &Marker{Colors: theme.ColorsFrom(2)},
		}},
		Layout: layout,
	}
}

// DistanceVsFare plots every filtered trip as a marker.
func DistanceVsFare(agg *models.Aggregates, theme Theme) Figure {
	x := make([]any, len(agg.Scatter.Distances))
	for i, d := range agg.Scatter.Distances {
		x[i] = d
	}

	return Figure{
		Data: []Trace{{
			Type:   TraceScatter,
			Mode:   ModeMarkers,
			X:      x,
			Y:      copyValues(agg.Scatter.Fares),
			Marker: &Marker{Color: theme.Color(3), Size: 5},
		}},
		Layout: theme.layout("Trip Distance vs Fare Amount", "Trip Distance (miles)", "Fare Amount"),
	}
}

// RateCodeByPaymentFare groups bars by rate code with one trace per payment type.
func RateCodeByPaymentFare(agg *models.Aggregates, theme Theme) Figure {
	split := agg.SplitByPayment()

	traces := make([]Trace, 0, len(split))
	for i, ps := range split {
		x := make([]any, len(ps.Series.Keys))
		for i, r := range ps.Series.Keys {
			x[i] = r.String()
		}
		traces = append(traces, Trace{
			Type:   TraceBar,
			Name:   ps.PaymentType,
			X:      x,
			Y:      copyValues(ps.Series.Values),
			Marker: &Marker{Color: theme.Color(i)},
		})
	}

	layout := theme.layout("Average Fare by Rate Code and Payment Type", "Rate Code", axisAverageFare)
	layout.XAxis.Type = "category"
	layout.BarMode = "group"
	layout.Legend = &Legend{Font: Font{Size: legendFontSize}}

	return Figure{
		Data:   traces,
		Layout: layout,
	}
}

func (t Theme) layout(title, xTitle, yTitle string) Layout {
	return Layout{
		Title:        Text{Text: title},
		XAxis:        &Axis{Title: Text{Text: xTitle}, GridColor: t.GridColor},
		YAxis:        &Axis{Title: Text{Text: yTitle}, GridColor: t.GridColor},
		Font:         Font{Size: t.FontSize, Color: t.FontColor},
		PaperBGColor: t.PaperColor,
		PlotBGColor:  t.PlotColor,
		Colorway:     t.ColorsFrom(0),
	}
}

func copyValues(v []float64) []float64 {
	return append(make([]float64, 0, len(v)), v...)
}
