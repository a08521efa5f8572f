package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Heatmap renders a dense row-by-column grid where cell color intensity
// follows the value. Rows and columns carry their own labels; values must be
// a dense [row][col] matrix.
func Heatmap(width, height int, rows, cols []string, values [][]float64, opts HeatmapOpts) (template.HTML, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return "", fmt.Errorf("svg: row and column labels required")
	}
	if len(values) != len(rows) {
		return "", fmt.Errorf("svg: values must have one row per row label")
	}
	for _, row := range values {
		if len(row) != len(cols) {
			return "", fmt.Errorf("svg: values must have one cell per column label")
		}
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
	low := parseHex(fallback(opts.LowColor, "#eff6ff"))
	high := parseHex(fallback(opts.HighColor, "#1d4ed8"))

	labelGutter := 80.0
	gridWidth := float64(width) - labelGutter - padding
	gridHeight := float64(height) - 2*padding
	if gridWidth <= 0 || gridHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	var maxVal float64
	for _, row := range values {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	cellWidth := gridWidth / float64(len(cols))
	cellHeight := gridHeight / float64(len(rows))

	titleID := makeID(opts.Title, "heatmap-title")
	descID := makeID(opts.Title, "heatmap-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Heat map"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Value intensity grid"))))

	for i, rowLabel := range rows {
		y := padding + float64(i)*cellHeight
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", labelGutter-8, y+cellHeight/2+3, axisColor, template.HTMLEscapeString(rowLabel)))
		for j := range cols {
			x := labelGutter + float64(j)*cellWidth
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" stroke=\"#ffffff\" stroke-width=\"1\" aria-label=\"%s %s %s\"></rect>",
				x, y, cellWidth, cellHeight, blend(low, high, values[i][j]/maxVal), template.HTMLEscapeString(rowLabel), template.HTMLEscapeString(cols[j]), template.HTMLEscapeString(formatTick(values[i][j]))))
		}
	}

	for j, colLabel := range cols {
		x := labelGutter + float64(j)*cellWidth + cellWidth/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, padding+gridHeight+14, axisColor, template.HTMLEscapeString(colLabel)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

type rgb struct {
	r, g, b int
}

func parseHex(s string) rgb {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb{}
	}
	var c rgb
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.r, &c.g, &c.b); err != nil {
		return rgb{}
	}
	return c
}

func blend(low, high rgb, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b int) int {
		return a + int(float64(b-a)*t)
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(low.r, high.r), mix(low.g, high.g), mix(low.b, high.b))
}
