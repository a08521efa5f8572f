package analytics

import "testing"

func TestTopProductsRanking(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Widget", Cost: 1},
		{ID: 2, Name: "Gadget", Cost: 1},
		{ID: 3, Name: "Sprocket", Cost: 1},
	}
	records := []SalesRecord{
		{ProductID: 1, TotalSales: 10},
		{ProductID: 2, TotalSales: 50},
		{ProductID: 1, TotalSales: 15},
		{ProductID: 3, TotalSales: 20},
	}

	ranked := TopProducts(records, products, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ranked))
	}
	if ranked[0].Name != "Gadget" || ranked[0].Total != 50 {
		t.Fatalf("unexpected leader %+v", ranked[0])
	}
	if ranked[1].Name != "Widget" || ranked[1].Total != 25 {
		t.Fatalf("unexpected runner-up %+v", ranked[1])
	}
}

func TestTopProductsSkipsUnknownIDs(t *testing.T) {
	products := []Product{{ID: 1, Name: "Widget"}}
	records := []SalesRecord{
		{ProductID: 1, TotalSales: 10},
		{ProductID: 999, TotalSales: 1000},
	}
	ranked := TopProducts(records, products, 5)
	if len(ranked) != 1 {
		t.Fatalf("expected unmatched product excluded, got %d rows", len(ranked))
	}
	if ranked[0].Name != "Widget" {
		t.Fatalf("unexpected row %+v", ranked[0])
	}
}

func TestTopProductsTieKeepsFirstAppearance(t *testing.T) {
	products := []Product{
		{ID: 1, Name: "Widget"},
		{ID: 2, Name: "Gadget"},
	}
	records := []SalesRecord{
		{ProductID: 2, TotalSales: 10},
		{ProductID: 1, TotalSales: 10},
	}
	ranked := TopProducts(records, products, 2)
	if ranked[0].Name != "Gadget" {
		t.Fatalf("expected stable tie order, got %+v", ranked)
	}
}

func TestTopProductsNonPositiveN(t *testing.T) {
	if got := TopProducts([]SalesRecord{{ProductID: 1}}, []Product{{ID: 1, Name: "Widget"}}, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}
