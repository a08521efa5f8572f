// Package importer loads Excel workbooks into the relational store, one
// database table per sheet.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook contains no usable sheets.
var ErrNoSheets = errors.New("importer: workbook has no sheets")

// Sheet is one worksheet with its header row split off.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// TableName is the database table the sheet maps to. Sheet names are
// lower-cased so "Sales2021" and "sales2021" land in the same table.
func (s Sheet) TableName() string {
	return strings.ToLower(strings.TrimSpace(s.Name))
}

// ReadWorkbook parses an xlsx stream into sheets. The first row of each sheet
// is treated as the header; sheets without a header row are skipped.
func ReadWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("importer: read sheet %s: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}
		header := make([]string, 0, len(rows[0]))
		for _, cell := range rows[0] {
			header = append(header, strings.TrimSpace(cell))
		}
		if len(header) == 0 {
			continue
		}

		body := make([][]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			// excelize drops trailing empty cells; pad back to the header width.
			padded := make([]string, len(header))
			copy(padded, row)
			body = append(body, padded)
		}
		sheets = append(sheets, Sheet{Name: name, Columns: header, Rows: body})
	}
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return sheets, nil
}
