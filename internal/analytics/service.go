package analytics

import (
	"context"
	"fmt"

	"github.com/salespulse/salespulse/internal/tablestore"
)

// ProductsTable is the reference table the KPI and ranking joins rely on.
const ProductsTable = "products"

// TableStore is the raw table collaborator the dashboard reads from.
type TableStore interface {
	ListTables(ctx context.Context) ([]string, error)
	ReadTable(ctx context.Context, name string) (tablestore.Table, error)
}

// Service computes one fully isolated dashboard per call. Nothing is cached
// or shared between requests; every build re-reads the backing store.
type Service struct {
	store TableStore
}

// NewService wires the dashboard pipeline to a table store.
func NewService(store TableStore) *Service {
	return &Service{store: store}
}

// ListTables exposes the store's table names for read-only display.
func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	return s.store.ListTables(ctx)
}

// Dashboard is the complete aggregate set for one render.
type Dashboard struct {
	KPI         KPISet
	Yearly      []TrendPoint
	Quarterly   []TrendPoint
	Monthly     []TrendPoint
	Daily       []DailyPoint
	Heatmap     Heatmap
	TopProducts []ProductTotal
	Tables      []string
}

// BuildDashboard runs the full fetch-consolidate-aggregate cycle. The first
// error fails the whole render; there is no partial dashboard.
func (s *Service) BuildDashboard(ctx context.Context, rank int) (*Dashboard, error) {
	names, err := s.store.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	tables := make(map[string]tablestore.Table, len(names))
	for _, name := range names {
		tbl, err := s.store.ReadTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read table %s: %w", name, err)
		}
		tables[name] = tbl
	}

	records, err := ConsolidateSales(tables)
	if err != nil {
		return nil, err
	}

	productsTbl, ok := tables[ProductsTable]
	if !ok {
		return nil, fmt.Errorf("read table %s: %w", ProductsTable, tablestore.ErrTableNotFound)
	}
	products, err := ParseProducts(productsTbl)
	if err != nil {
		return nil, err
	}

	calendar, err := BuildCalendar(records)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Tables: names}
	if dash.Yearly, err = Trend(calendar, records, PeriodYearly); err != nil {
		return nil, err
	}
	if dash.Quarterly, err = Trend(calendar, records, PeriodQuarterly); err != nil {
		return nil, err
	}
	if dash.Monthly, err = Trend(calendar, records, PeriodMonthly); err != nil {
		return nil, err
	}
	dash.Daily = Daily(calendar, records)
	dash.Heatmap = MonthYearHeatmap(calendar, records)
	dash.TopProducts = TopProducts(records, products, rank)
	dash.KPI = ComputeKPIs(records, products, dash.Monthly)
	return dash, nil
}
