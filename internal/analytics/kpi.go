package analytics

import "math"

// KPISet carries the scalar metrics surfaced on the dashboard cards.
type KPISet struct {
	TotalSales      float64
	TotalCost       float64
	TotalProfit     float64
	ProfitMarginPct float64
	MonthlyAvgSales float64
}

// ComputeKPIs derives the KPI card from consolidated sales joined with
// product costs. Sales rows without a matching product still count toward
// TotalSales but contribute no cost. The margin guard makes a zero-sales
// dataset report 0% instead of failing.
func ComputeKPIs(records []SalesRecord, products []Product, monthly []TrendPoint) KPISet {
	costs := make(map[int64]float64, len(products))
	for _, p := range products {
		costs[p.ID] = p.Cost
	}

	var set KPISet
	for _, rec := range records {
		set.TotalSales += rec.TotalSales
		if cost, ok := costs[rec.ProductID]; ok {
			set.TotalCost += cost * float64(rec.Quantity)
		}
	}
	set.TotalProfit = set.TotalSales - set.TotalCost
	if set.TotalSales != 0 {
		set.ProfitMarginPct = set.TotalProfit / set.TotalSales * 100
	}
	if len(monthly) > 0 {
		var sum float64
		for _, p := range monthly {
			sum += p.Total
		}
		set.MonthlyAvgSales = math.Round(sum / float64(len(monthly)))
	}
	return set
}
