package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/salespulse/salespulse/internal/tablestore"
)

// Column names as produced by the spreadsheet import.
const (
	ColOrderDate   = "Order Date"
	ColProductID   = "Product ID"
	ColQuantity    = "Quantity"
	ColPrice       = "Price"
	ColProductName = "Product Name"
	ColCost        = "Cost"
)

var salesColumns = []string{ColOrderDate, ColProductID, ColQuantity, ColPrice}

var (
	hasDigit  = regexp.MustCompile(`\d`)
	salesWord = regexp.MustCompile(`(?i)\bsales\b`)
)

// IsSalesTable reports whether a table name follows the period-sales naming
// convention: the whole word "sales" plus at least one digit.
func IsSalesTable(name string) bool {
	return hasDigit.MatchString(name) && salesWord.MatchString(name)
}

// ConsolidateSales merges every period-sales table into one record set and
// derives TotalSales = Quantity x Price per row. Tables are visited in sorted
// name order so the concatenated row sequence is deterministic. All matched
// tables must share the same column set.
func ConsolidateSales(tables map[string]tablestore.Table) ([]SalesRecord, error) {
	names := make([]string, 0, len(tables))
	for name := range tables {
		if IsSalesTable(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSalesTables
	}
	sort.Strings(names)

	reference := tables[names[0]].Columns
	var records []SalesRecord
	for _, name := range names {
		tbl := tables[name]
		if !sameColumns(reference, tbl.Columns) {
			return nil, &SchemaMismatchError{Table: name, Want: reference, Got: tbl.Columns}
		}
		index, err := columnIndex(tbl, salesColumns)
		if err != nil {
			return nil, err
		}
		for i, row := range tbl.Rows {
			rec, err := salesRecordFromRow(tbl, row, index)
			if err != nil {
				return nil, fmt.Errorf("table %s row %d: %w", name, i, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// ParseProducts converts the products reference table into typed records.
func ParseProducts(tbl tablestore.Table) ([]Product, error) {
	index, err := columnIndex(tbl, []string{ColProductID, ColProductName, ColCost})
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		id, ok := cellInt(row[index[ColProductID]])
		if !ok {
			return nil, fmt.Errorf("table %s row %d: bad %s value", tbl.Name, i, ColProductID)
		}
		name, ok := cellString(row[index[ColProductName]])
		if !ok {
			return nil, fmt.Errorf("table %s row %d: bad %s value", tbl.Name, i, ColProductName)
		}
		cost, ok := cellFloat(row[index[ColCost]])
		if !ok {
			return nil, fmt.Errorf("table %s row %d: bad %s value", tbl.Name, i, ColCost)
		}
		products = append(products, Product{ID: id, Name: name, Cost: cost})
	}
	return products, nil
}

func salesRecordFromRow(tbl tablestore.Table, row []any, index map[string]int) (SalesRecord, error) {
	date, ok := cellTime(row[index[ColOrderDate]])
	if !ok {
		return SalesRecord{}, fmt.Errorf("bad %s value", ColOrderDate)
	}
	productID, ok := cellInt(row[index[ColProductID]])
	if !ok {
		return SalesRecord{}, fmt.Errorf("bad %s value", ColProductID)
	}
	quantity, ok := cellInt(row[index[ColQuantity]])
	if !ok {
		return SalesRecord{}, fmt.Errorf("bad %s value", ColQuantity)
	}
	price, ok := cellFloat(row[index[ColPrice]])
	if !ok {
		return SalesRecord{}, fmt.Errorf("bad %s value", ColPrice)
	}
	return SalesRecord{
		OrderDate:  date,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      price,
		TotalSales: float64(quantity) * price,
	}, nil
}

// columnIndex resolves the position of each required column, or reports the
// first one that is missing.
func columnIndex(tbl tablestore.Table, required []string) (map[string]int, error) {
	positions := make(map[string]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		positions[col] = i
	}
	index := make(map[string]int, len(required))
	for _, col := range required {
		pos, ok := positions[col]
		if !ok {
			return nil, &MissingColumnError{Table: tbl.Name, Column: col}
		}
		index[col] = pos
	}
	return index, nil
}

// sameColumns compares column sets ignoring order.
func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, col := range a {
		seen[col]++
	}
	for _, col := range b {
		seen[col]--
		if seen[col] < 0 {
			return false
		}
	}
	return true
}

func cellTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return dayOf(val), true
	case string:
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
			if t, err := time.Parse(layout, val); err == nil {
				return dayOf(t), true
			}
		}
	}
	return time.Time{}, false
}

func cellInt(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int32:
		return int64(val), true
	case int:
		return int64(val), true
	case float64:
		return int64(val), true
	case string:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func cellFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case int:
		return float64(val), true
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func cellString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
