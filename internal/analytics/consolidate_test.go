package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/salespulse/salespulse/internal/tablestore"
)

func salesTable(name string, rows [][]any) tablestore.Table {
	return tablestore.Table{
		Name:    name,
		Columns: []string{ColOrderDate, ColProductID, ColQuantity, ColPrice},
		Rows:    rows,
	}
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsSalesTable(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"sales2021", true},
		{"Sales2022", true},
		{"2023 sales", true},
		{"sales", false},
		{"report2021", false},
		{"salesmen2021", false},
		{"products", false},
	}
	for _, tc := range cases {
		if got := IsSalesTable(tc.name); got != tc.want {
			t.Errorf("IsSalesTable(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestConsolidateSalesMergesMatchedTables(t *testing.T) {
	tables := map[string]tablestore.Table{
		"sales2022": salesTable("sales2022", [][]any{
			{day("2022-03-01"), int64(2), int64(1), 8.0},
		}),
		"sales2021": salesTable("sales2021", [][]any{
			{day("2021-01-02"), int64(1), int64(3), 5.0},
			{day("2021-01-03"), int64(2), int64(2), 8.0},
		}),
		"report2021": {
			Name:    "report2021",
			Columns: []string{"Anything"},
			Rows:    [][]any{{"ignored"}},
		},
		"products": {
			Name:    "products",
			Columns: []string{ColProductID, ColProductName, ColCost},
		},
	}

	records, err := ConsolidateSales(tables)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// sales2021 sorts before sales2022, so its rows come first.
	if !records[0].OrderDate.Equal(day("2021-01-02")) {
		t.Fatalf("expected sales2021 rows first, got %v", records[0].OrderDate)
	}
	if records[0].TotalSales != 15.0 {
		t.Fatalf("expected TotalSales 15, got %v", records[0].TotalSales)
	}
	if records[2].TotalSales != 8.0 {
		t.Fatalf("expected TotalSales 8, got %v", records[2].TotalSales)
	}
}

func TestConsolidateSalesSchemaMismatch(t *testing.T) {
	tables := map[string]tablestore.Table{
		"sales2021": salesTable("sales2021", nil),
		"sales2022": {
			Name:    "sales2022",
			Columns: []string{ColOrderDate, ColProductID, ColQuantity},
		},
	}

	_, err := ConsolidateSales(tables)
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected SchemaMismatchError, got %v", err)
	}
	if mismatch.Table != "sales2022" {
		t.Fatalf("expected mismatch on sales2022, got %s", mismatch.Table)
	}
}

func TestConsolidateSalesNoMatches(t *testing.T) {
	tables := map[string]tablestore.Table{
		"products":   {Name: "products"},
		"report2021": {Name: "report2021"},
	}
	if _, err := ConsolidateSales(tables); !errors.Is(err, ErrNoSalesTables) {
		t.Fatalf("expected ErrNoSalesTables, got %v", err)
	}
}

func TestConsolidateSalesColumnOrderIgnored(t *testing.T) {
	tables := map[string]tablestore.Table{
		"sales2021": salesTable("sales2021", [][]any{
			{day("2021-01-01"), int64(1), int64(1), 2.0},
		}),
		"sales2022": {
			Name:    "sales2022",
			Columns: []string{ColPrice, ColQuantity, ColProductID, ColOrderDate},
			Rows: [][]any{
				{4.0, int64(2), int64(1), day("2022-01-01")},
			},
		},
	}

	records, err := ConsolidateSales(tables)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].TotalSales != 8.0 {
		t.Fatalf("expected reordered columns to resolve, got %v", records[1].TotalSales)
	}
}

func TestParseProducts(t *testing.T) {
	tbl := tablestore.Table{
		Name:    "products",
		Columns: []string{ColProductID, ColProductName, ColCost},
		Rows: [][]any{
			{int64(1), "Widget", 2.5},
			{int64(2), "Gadget", 4.0},
		},
	}
	products, err := ParseProducts(tbl)
	if err != nil {
		t.Fatalf("parse products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Widget" || products[0].Cost != 2.5 {
		t.Fatalf("unexpected first product: %+v", products[0])
	}
}

func TestParseProductsMissingColumn(t *testing.T) {
	tbl := tablestore.Table{
		Name:    "products",
		Columns: []string{ColProductID, ColProductName},
	}
	_, err := ParseProducts(tbl)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != ColCost {
		t.Fatalf("expected missing %s, got %s", ColCost, missing.Column)
	}
}
