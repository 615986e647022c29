package charts

// Theme is the look shared by every chart of the dashboard. It is passed
// explicitly to the builders; there is no package level default.
type Theme struct {
	Name       string
	Palette    []string
	FontSize   int
	PaperColor string
	PlotColor  string
	FontColor  string
	GridColor  string
}

type themeColors struct {
	paper, plot, font, grid string
}

var themes = map[string]themeColors{
	"plotly_dark":  {paper: "#111111", plot: "#111111", font: "#f2f5fa", grid: "#283442"},
	"plotly_white": {paper: "#ffffff", plot: "#ffffff", font: "#2a3f5f", grid: "#ebf0f8"},
	"plotly":       {paper: "#ffffff", plot: "#e5ecf6", font: "#2a3f5f", grid: "#ffffff"},
}

// DefaultThemeName is used for unknown theme names.
const DefaultThemeName = "plotly_dark"

// NewTheme resolves a named theme. Unknown names fall back to DefaultThemeName.
func NewTheme(name string, palette []string, fontSize int) Theme {
	colors, ok := themes[name]
	if !ok {
		name = DefaultThemeName
		colors = themes[name]
	}

	return Theme{
		Name:       name,
		Palette:    append([]string(nil), palette...),
		FontSize:   fontSize,
		PaperColor: colors.paper,
		PlotColor:  colors.plot,
		FontColor:  colors.font,
		GridColor:  colors.grid,
	}
}

// Color returns the i-th palette color, wrapping around.
func (t Theme) Color(i int) string {
	if len(t.Palette) == 0 {
		return ""
	}
	return t.Palette[i%len(t.Palette)]
}

// ColorsFrom returns the palette from index i on.
func (t Theme) ColorsFrom(i int) []string {
	if i >= len(t.Palette) {
		return nil
	}
	return append([]string(nil), t.Palette[i:]...)
}
