package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestReadWorkbook(t *testing.T) {
	buf := workbookBytes(t, map[string][][]any{
		"Sales2021": {
			{"Order Date", "Product ID", "Quantity", "Price"},
			{"2021-01-02", 1, 3, 5.5},
			{"2021-01-03", 2, 1, 8.0},
		},
	})

	sheets, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	sheet := sheets[0]
	if sheet.TableName() != "sales2021" {
		t.Fatalf("expected lower-case table name, got %q", sheet.TableName())
	}
	if len(sheet.Columns) != 4 || sheet.Columns[0] != "Order Date" {
		t.Fatalf("unexpected header %v", sheet.Columns)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(sheet.Rows))
	}
}

func TestReadWorkbookPadsShortRows(t *testing.T) {
	buf := workbookBytes(t, map[string][][]any{
		"products": {
			{"Product ID", "Product Name", "Cost"},
			{1, "Widget"},
		},
	})

	sheets, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	row := sheets[0].Rows[0]
	if len(row) != 3 {
		t.Fatalf("expected padded row of 3 cells, got %d", len(row))
	}
	if row[2] != "" {
		t.Fatalf("expected empty trailing cell, got %q", row[2])
	}
}

func TestReadWorkbookEmpty(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := ReadWorkbook(&buf); !errors.Is(err, ErrNoSheets) {
		t.Fatalf("expected ErrNoSheets, got %v", err)
	}
}

func TestConvertCellTypes(t *testing.T) {
	if v, err := convertCell("Quantity", "12"); err != nil || v.(int64) != 12 {
		t.Fatalf("quantity: %v %v", v, err)
	}
	if v, err := convertCell("Quantity", "12.0"); err != nil || v.(int64) != 12 {
		t.Fatalf("quantity float form: %v %v", v, err)
	}
	if v, err := convertCell("Price", "1,234.5"); err != nil || v.(float64) != 1234.5 {
		t.Fatalf("price: %v %v", v, err)
	}
	if _, err := convertCell("Order Date", "not a date"); err == nil {
		t.Fatal("expected error for bad date")
	}
	if v, err := convertCell("Product Name", "Widget"); err != nil || v.(string) != "Widget" {
		t.Fatalf("text passthrough: %v %v", v, err)
	}
}

func TestColumnTypeMapping(t *testing.T) {
	cases := map[string]string{
		"Order Date":   "date",
		"Quantity":     "bigint",
		"Product ID":   "bigint",
		"Price":        "double precision",
		"Cost":         "double precision",
		"Product Name": "text",
	}
	for col, want := range cases {
		if got := columnType(col); got != want {
			t.Errorf("columnType(%q) = %q, want %q", col, got, want)
		}
	}
}
