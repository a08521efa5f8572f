package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/salespulse/salespulse/internal/analytics"
)

// WriteKPICSV serialises the KPI card to a CSV representation.
func WriteKPICSV(w io.Writer, set analytics.KPISet) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	records := [][]string{
		{"Total Sales", formatFloat(set.TotalSales)},
		{"Total Cost", formatFloat(set.TotalCost)},
		{"Total Profit", formatFloat(set.TotalProfit)},
		{"Profit Margin %", formatFloat(set.ProfitMarginPct)},
		{"Monthly Average Sales", formatFloat(set.MonthlyAvgSales)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTrendCSV emits one period aggregate as CSV under the given heading.
func WriteTrendCSV(w io.Writer, heading string, points []analytics.TrendPoint) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{heading, "Total Sales"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{point.Label, formatFloat(point.Total)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTopProductsCSV prints the top-seller ranking to CSV.
func WriteTopProductsCSV(w io.Writer, products []analytics.ProductTotal) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"Product Name", "Total Sales"}); err != nil {
		return err
	}
	for _, product := range products {
		if err := writer.Write([]string{product.Name, formatFloat(product.Total)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHeatmapCSV emits the month-by-year pivot with years as columns.
func WriteHeatmapCSV(w io.Writer, hm analytics.Heatmap) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := make([]string, 0, len(hm.Years)+1)
	header = append(header, "Month")
	for _, year := range hm.Years {
		header = append(header, strconv.Itoa(year))
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for i, month := range hm.Months {
		row := make([]string, 0, len(hm.Years)+1)
		row = append(row, month.String())
		for j := range hm.Years {
			row = append(row, formatFloat(hm.Values[i][j]))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
