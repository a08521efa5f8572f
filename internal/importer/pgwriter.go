package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGWriter loads sheets into Postgres. Each Replace drops and recreates the
// destination table, so repeated imports of the same workbook converge.
type PGWriter struct {
	pool *pgxpool.Pool
}

// NewPGWriter wires the writer to a connection pool.
func NewPGWriter(pool *pgxpool.Pool) *PGWriter {
	return &PGWriter{pool: pool}
}

// Replace swaps the table contents for the sheet inside one transaction.
func (w *PGWriter) Replace(ctx context.Context, sheet Sheet) error {
	table := sheet.TableName()
	if table == "" {
		return fmt.Errorf("importer: sheet %q has no usable name", sheet.Name)
	}

	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{table}.Sanitize()
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	if _, err := tx.Exec(ctx, createTableSQL(ident, sheet.Columns)); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	rows := make([][]any, 0, len(sheet.Rows))
	for i, raw := range sheet.Rows {
		row, err := convertRow(sheet.Columns, raw)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, sheet.Columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return tx.Commit(ctx)
}

func createTableSQL(ident string, columns []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(ident)
	b.WriteString(" (")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{col}.Sanitize())
		b.WriteString(" ")
		b.WriteString(columnType(col))
	}
	b.WriteString(")")
	return b.String()
}

func columnType(column string) string {
	switch column {
	case "Order Date":
		return "date"
	case "Quantity", "Product ID":
		return "bigint"
	case "Price", "Cost":
		return "double precision"
	default:
		return "text"
	}
}

func convertRow(columns []string, raw []string) ([]any, error) {
	row := make([]any, len(columns))
	for i, col := range columns {
		cell := ""
		if i < len(raw) {
			cell = strings.TrimSpace(raw[i])
		}
		if cell == "" {
			row[i] = nil
			continue
		}
		value, err := convertCell(col, cell)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		row[i] = value
	}
	return row, nil
}

// dateLayouts covers the formats excelize renders date cells in, depending on
// the cell's number format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"1/2/2006",
}

func convertCell(column, cell string) (any, error) {
	switch columnType(column) {
	case "date":
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unparseable date %q", cell)
	case "bigint":
		value, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			// Some sheets store integers as "12.0".
			f, ferr := strconv.ParseFloat(cell, 64)
			if ferr != nil {
				return nil, fmt.Errorf("unparseable integer %q", cell)
			}
			return int64(f), nil
		}
		return value, nil
	case "double precision":
		value, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("unparseable number %q", cell)
		}
		return value, nil
	default:
		return cell, nil
	}
}
