package analytics

import "sort"

// ProductTotal is one row of the top-selling products ranking.
type ProductTotal struct {
	Name  string
	Total float64
}

// TopProducts joins sales to products on ProductID, sums TotalSales per
// product name and returns the n best sellers in descending order. Rows whose
// ProductID has no reference entry are excluded from the ranking. Ties keep
// first-appearance order.
func TopProducts(records []SalesRecord, products []Product, n int) []ProductTotal {
	if n <= 0 {
		return nil
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	totals := make(map[string]float64)
	var order []string
	for _, rec := range records {
		name, ok := names[rec.ProductID]
		if !ok {
			continue
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += rec.TotalSales
	}

	ranked := make([]ProductTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, ProductTotal{Name: name, Total: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
