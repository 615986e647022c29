package charts

// Figure is a chart in the Plotly JSON figure format: a list of traces and a layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

const (
	TraceScatter = "scatter"
	TraceBar     = "bar"
	TracePie     = "pie"

	ModeLines   = "lines"
	ModeMarkers = "markers"
)

type Trace struct {
	Type   string    `json:"type"`
	Name   string    `json:"name,omitempty"`
	Mode   string    `json:"mode,omitempty"`
	X      []any     `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Line   *Line     `json:"line,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Len returns the number of points of the trace.
func (t Trace) Len() int {
	if t.Type == TracePie {
		return len(t.Values)
	}
	return len(t.Y)
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Size   float64  `json:"size,omitempty"`
}

type Layout struct {
	Title        Text     `json:"title"`
	XAxis        *Axis    `json:"xaxis,omitempty"`
	YAxis        *Axis    `json:"yaxis,omitempty"`
	Font         Font     `json:"font"`
	BarMode      string   `json:"barmode,omitempty"`
	Legend       *Legend  `json:"legend,omitempty"`
	PaperBGColor string   `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string   `json:"plot_bgcolor,omitempty"`
	Colorway     []string `json:"colorway,omitempty"`
}

type Text struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     Text   `json:"title"`
	Type      string `json:"type,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Legend struct {
	Font Font `json:"font"`
}

// Points returns the number of points over all traces.
func (f Figure) Points() int {
	n := 0
	for _, t := range f.Data {
		n += t.Len()
	}
	return n
}
