package ui

import (
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/salespulse/salespulse/internal/analytics"
	"github.com/salespulse/salespulse/internal/analytics/svg"
)

// DashboardFilters represents sanitized query filters used by the dashboard.
type DashboardFilters struct {
	Granularity analytics.PeriodKind
	Rank        int
}

// DashboardKPI exposes the headline metrics as display-ready strings.
type DashboardKPI struct {
	TotalSales      string
	TotalCost       string
	TotalProfit     string
	ProfitMargin    string
	MonthlyAvgSales string
}

// RankedProduct is one row of the top-sellers table.
type RankedProduct struct {
	Name  string
	Total string
}

// DashboardViewModel combines all dashboard data for rendering.
type DashboardViewModel struct {
	Filters     DashboardFilters
	KPI         DashboardKPI
	TopProducts []RankedProduct
	Tables      []string
	TopSVG      template.HTML
	TrendSVG    template.HTML
	PieSVG      template.HTML
	HeatmapSVG  template.HTML
}

// LineRenderer abstracts SVG line chart rendering for the dashboard.
type LineRenderer interface {
	Line(width, height int, series []float64, labels []string, opts svg.LineOpts) (template.HTML, error)
}

// BarRenderer abstracts SVG bar chart rendering for the dashboard.
type BarRenderer interface {
	Bars(width, height int, series []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
	HBars(width, height int, series []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
}

// PieRenderer abstracts SVG pie chart rendering for the dashboard.
type PieRenderer interface {
	Pie(size int, values []float64, labels []string, opts svg.PieOpts) (template.HTML, error)
}

// HeatmapRenderer abstracts SVG heat map rendering for the dashboard.
type HeatmapRenderer interface {
	Heatmap(width, height int, rows, cols []string, values [][]float64, opts svg.HeatmapOpts) (template.HTML, error)
}

var printer = message.NewPrinter(language.English)

// Money formats a raw aggregate as a whole-dollar display string with
// thousands grouping. Formatting is a presentation concern only; the engine
// itself returns raw numbers.
func Money(v float64) string {
	return printer.Sprintf("$ %v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// Percent formats a margin percentage to one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%v%%", number.Decimal(v, number.MaxFractionDigits(1)))
}

// ToKPI converts the KPI set into display strings.
func ToKPI(set analytics.KPISet) DashboardKPI {
	return DashboardKPI{
		TotalSales:      Money(set.TotalSales),
		TotalCost:       Money(set.TotalCost),
		TotalProfit:     Money(set.TotalProfit),
		ProfitMargin:    Percent(set.ProfitMarginPct),
		MonthlyAvgSales: Money(set.MonthlyAvgSales),
	}
}

// ToRankedProducts converts the top-N aggregate into table rows.
func ToRankedProducts(products []analytics.ProductTotal) []RankedProduct {
	rows := make([]RankedProduct, 0, len(products))
	for _, p := range products {
		rows = append(rows, RankedProduct{Name: p.Name, Total: Money(p.Total)})
	}
	return rows
}

// TrendSeries splits trend points into the parallel slices the renderers take.
func TrendSeries(points []analytics.TrendPoint) ([]float64, []string) {
	series := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, point := range points {
		series = append(series, point.Total)
		labels = append(labels, point.Label)
	}
	return series, labels
}

// DailySeries splits daily points into raw totals, the smoothed overlay and
// date labels.
func DailySeries(points []analytics.DailyPoint) ([]float64, []float64, []string) {
	series := make([]float64, 0, len(points))
	overlay := make([]float64, 0, len(points))
	labels := make([]string, 0, len(points))
	for _, point := range points {
		series = append(series, point.Total)
		overlay = append(overlay, point.Smoothed)
		labels = append(labels, point.Date.Format("2006-01-02"))
	}
	return series, overlay, labels
}

// HeatmapGrid converts the month-by-year pivot into renderer labels.
func HeatmapGrid(hm analytics.Heatmap) ([]string, []string) {
	rows := make([]string, 0, len(hm.Months))
	for _, m := range hm.Months {
		rows = append(rows, m.String()[:3])
	}
	cols := make([]string, 0, len(hm.Years))
	for _, y := range hm.Years {
		cols = append(cols, printer.Sprintf("%v", number.Decimal(y, number.NoSeparator())))
	}
	return rows, cols
}

// FormatDay renders a spine date for tables.
func FormatDay(t time.Time) string {
	return t.Format("02 Jan 2006")
}
