package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders a vertical bar chart for one series.
func Bars(width, height int, series []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(series) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	barColor := fallback(opts.BarColor, "#2563eb")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := bounds(series)
	if minVal > 0 {
		minVal = 0
	}
	if maxVal < 0 {
		maxVal = 0
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	scale := chartHeight / (maxVal - minVal)
	zeroY := padding + chartHeight - (0-minVal)*scale

	groupWidth := chartWidth / float64(len(labels))
	barWidth := groupWidth * 0.6

	titleID := makeID(opts.Title, "bar-title")
	descID := makeID(opts.Title, "bar-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Bar chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Bar series"))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		value := minVal + (maxVal-minVal)*ratio
		y := padding + chartHeight - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	// Axes
	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-label=\"Axes\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, padding+chartHeight))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, zeroY, padding+chartWidth, zeroY))
	b.WriteString("</g>")

	for i, label := range labels {
		baseX := padding + float64(i)*groupWidth + (groupWidth-barWidth)/2
		value := series[i]
		barHeight := value * scale
		y := zeroY - barHeight
		if barHeight < 0 {
			y = zeroY
			barHeight = -barHeight
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX, y, barWidth, barHeight, barColor, template.HTMLEscapeString(label), template.HTMLEscapeString(formatTick(value))))
		center := padding + float64(i)*groupWidth + groupWidth/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, padding+chartHeight+14, axisColor, template.HTMLEscapeString(label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// HBars renders a horizontal bar chart for rankings with long category labels.
func HBars(width, height int, series []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	if len(series) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match series")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	barColor := fallback(opts.BarColor, "#2563eb")

	// Gutter on the left for category labels, room on the right for values.
	labelGutter := 150.0
	valueGutter := 70.0
	chartWidth := float64(width) - labelGutter - valueGutter - padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	_, maxVal := bounds(series)
	if maxVal <= 0 {
		maxVal = 1
	}
	scale := chartWidth / maxVal

	rowHeight := chartHeight / float64(len(labels))
	barHeight := rowHeight * 0.6

	titleID := makeID(opts.Title, "hbar-title")
	descID := makeID(opts.Title, "hbar-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Ranking"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Horizontal bar ranking"))))

	for i, label := range labels {
		y := padding + float64(i)*rowHeight + (rowHeight-barHeight)/2
		value := series[i]
		if value < 0 {
			value = 0
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", labelGutter-8, y+barHeight/2+3, axisColor, template.HTMLEscapeString(label)))
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", labelGutter, y, value*scale, barHeight, barColor, template.HTMLEscapeString(label), template.HTMLEscapeString(formatTick(value))))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s</text>", labelGutter+value*scale+6, y+barHeight/2+3, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", labelGutter, padding, labelGutter, padding+chartHeight, axisColor))

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
