package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders a share-of-total pie chart. Non-positive values are skipped;
// slice colors cycle through the palette.
func Pie(size int, values []float64, labels []string, opts PieOpts) (template.HTML, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("svg: values required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: labels length must match values")
	}
	if size <= 0 {
		size = DefaultHeight
	}

	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}

	palette := opts.Colors
	if len(palette) == 0 {
		palette = defaultPalette
	}
	labelColor := fallback(opts.LabelColor, "#475569")

	// Legend column to the right of the disc.
	width := size + 180
	cx := float64(size) / 2
	cy := float64(size) / 2
	radius := float64(size)/2 - 8

	titleID := makeID(opts.Title, "pie-title")
	descID := makeID(opts.Title, "pie-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, size, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Pie chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Share of total"))))

	// A dataset with no positive values still renders: a neutral disc keeps
	// the dashboard layout intact instead of failing the whole page.
	if total <= 0 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#e2e8f0\" aria-label=\"No data\"></circle>", cx, cy, radius))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"middle\">No sales data</text>", cx, cy+4, labelColor))
		b.WriteString("</svg>")
		return template.HTML(b.String()), nil
	}

	angle := -math.Pi / 2
	legendY := 20.0
	slice := 0
	for i, value := range values {
		if value <= 0 {
			continue
		}
		color := palette[slice%len(palette)]
		share := value / total
		sweep := share * 2 * math.Pi

		if almostEqual(share, 1) {
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\" aria-label=\"%s 100%%\"></circle>", cx, cy, radius, color, template.HTMLEscapeString(labels[i])))
		} else {
			x1 := cx + radius*math.Cos(angle)
			y1 := cy + radius*math.Sin(angle)
			x2 := cx + radius*math.Cos(angle+sweep)
			y2 := cy + radius*math.Sin(angle+sweep)
			largeArc := 0
			if sweep > math.Pi {
				largeArc = 1
			}
			b.WriteString(fmt.Sprintf("<path d=\"M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z\" fill=\"%s\" aria-label=\"%s %.1f%%\"></path>",
				cx, cy, x1, y1, radius, radius, largeArc, x2, y2, color, template.HTMLEscapeString(labels[i]), share*100))
		}
		angle += sweep

		b.WriteString(fmt.Sprintf("<rect x=\"%d\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", size+12, legendY-8, color))
		b.WriteString(fmt.Sprintf("<text x=\"%d\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"start\">%s (%.1f%%)</text>", size+28, legendY, labelColor, template.HTMLEscapeString(labels[i]), share*100))
		legendY += 16
		slice++
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
