package svg

import (
	"strings"
	"testing"
)

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(400, 200, []float64{120, 80, 140}, []string{"2021", "2022", "2023"}, BarOpts{
		Title:       "Yearly Sales",
		Description: "Total sales per year",
	})
	if err != nil {
		t.Fatalf("bar renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if strings.Count(output, "<rect") != 3 {
		t.Fatalf("expected 3 bars, got %d", strings.Count(output, "<rect"))
	}
}

func TestBarsLabelMismatch(t *testing.T) {
	if _, err := Bars(400, 200, []float64{1}, []string{"a", "b"}, BarOpts{}); err == nil {
		t.Fatal("expected error for label mismatch")
	}
}

func TestHBarsProducesSVG(t *testing.T) {
	html, err := HBars(720, 240, []float64{500, 300, 100}, []string{"Widget", "Gadget", "Sprocket"}, BarOpts{
		Title: "Top Selling Products",
	})
	if err != nil {
		t.Fatalf("hbar renderer error: %v", err)
	}
	output := string(html)
	if strings.Count(output, "<rect") != 3 {
		t.Fatalf("expected 3 bars, got %d", strings.Count(output, "<rect"))
	}
	if !strings.Contains(output, "Widget") {
		t.Fatalf("expected category label in output")
	}
}

func TestHBarsEmptySeries(t *testing.T) {
	if _, err := HBars(720, 240, nil, nil, BarOpts{}); err == nil {
		t.Fatal("expected error for empty series")
	}
}
