package svg

// LineOpts customises the line chart renderer. Overlay draws a dashed second
// series over the same scale, used for moving-average smoothing.
type LineOpts struct {
	Title        string
	Description  string
	StrokeColor  string
	OverlayColor string
	FillColor    string
	AxisColor    string
	GridColor    string
	Padding      float64
	ShowDots     bool
	TickCount    int
	Overlay      []float64
}

// BarOpts customises the bar chart renderers.
type BarOpts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// PieOpts customises the pie chart renderer.
type PieOpts struct {
	Title       string
	Description string
	Colors      []string
	LabelColor  string
}

// HeatmapOpts customises the heat map renderer.
type HeatmapOpts struct {
	Title       string
	Description string
	LowColor    string
	HighColor   string
	AxisColor   string
	Padding     float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
)

var defaultPalette = []string{
	"#2563eb", "#0ea5e9", "#14b8a6", "#f97316", "#eab308",
	"#a855f7", "#ef4444", "#64748b", "#16a34a", "#db2777",
}
