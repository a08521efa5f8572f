package analytics

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSalesTables means no table in the store matched the period-sales
	// naming convention. Callers must surface an error state rather than
	// render an empty dashboard.
	ErrNoSalesTables = errors.New("analytics: no sales tables found")

	// ErrEmptyDateRange means there are no order dates to span a calendar with.
	ErrEmptyDateRange = errors.New("analytics: empty date range")

	// ErrUnknownPeriod means a trend was requested for a period kind outside
	// the closed set.
	ErrUnknownPeriod = errors.New("analytics: unknown period kind")
)

// SchemaMismatchError reports a period-sales table whose columns diverge from
// its peers.
type SchemaMismatchError struct {
	Table string
	Want  []string
	Got   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("analytics: table %s columns [%s] do not match [%s]",
		e.Table, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}

// MissingColumnError reports a required column absent from an input table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("analytics: table %s missing column %q", e.Table, e.Column)
}
