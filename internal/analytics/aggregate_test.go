package analytics

import (
	"errors"
	"math"
	"testing"
	"time"
)

func mustCalendar(t *testing.T, records []SalesRecord) []CalendarEntry {
	t.Helper()
	entries, err := BuildCalendar(records)
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	return entries
}

func TestTrendDailyFillsGapsWithZero(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-01-01"), TotalSales: 10},
		{OrderDate: day("2021-01-03"), TotalSales: 5},
	}
	calendar := mustCalendar(t, records)

	points, err := Trend(calendar, records, PeriodDaily)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 daily buckets, got %d", len(points))
	}
	want := []float64{10, 0, 5}
	for i, point := range points {
		if point.Total != want[i] {
			t.Fatalf("bucket %d = %v, want %v", i, point.Total, want[i])
		}
	}
	if points[1].Label != "2021-01-02" {
		t.Fatalf("expected gap day label, got %q", points[1].Label)
	}
}

func TestTrendYearly(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-02-01"), TotalSales: 10},
		{OrderDate: day("2021-11-30"), TotalSales: 5},
		{OrderDate: day("2022-01-05"), TotalSales: 7},
	}
	calendar := mustCalendar(t, records)

	points, err := Trend(calendar, records, PeriodYearly)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 yearly buckets, got %d", len(points))
	}
	if points[0].Label != "2021" || points[0].Total != 15 {
		t.Fatalf("unexpected first bucket %+v", points[0])
	}
	if points[1].Label != "2022" || points[1].Total != 7 {
		t.Fatalf("unexpected second bucket %+v", points[1])
	}
}

func TestTrendMonthlyChronologicalAcrossYears(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-12-15"), TotalSales: 3},
		{OrderDate: day("2022-01-15"), TotalSales: 4},
	}
	calendar := mustCalendar(t, records)

	points, err := Trend(calendar, records, PeriodMonthly)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(points))
	}
	if points[0].Label != "2021 December" {
		t.Fatalf("expected December 2021 first, got %q", points[0].Label)
	}
	if points[1].Label != "2022 January" {
		t.Fatalf("expected January 2022 second, got %q", points[1].Label)
	}
}

func TestTrendQuarterlyLabels(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-01-10"), TotalSales: 2},
		{OrderDate: day("2021-04-10"), TotalSales: 3},
	}
	calendar := mustCalendar(t, records)

	points, err := Trend(calendar, records, PeriodQuarterly)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if points[0].Label != "2021 Qtr 1" || points[1].Label != "2021 Qtr 2" {
		t.Fatalf("unexpected quarter labels %q, %q", points[0].Label, points[1].Label)
	}
}

func TestTrendTotalsPreserved(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-03-05"), TotalSales: 12.5},
		{OrderDate: day("2021-06-20"), TotalSales: 7.5},
		{OrderDate: day("2022-02-02"), TotalSales: 30},
	}
	calendar := mustCalendar(t, records)

	var grand float64
	for _, rec := range records {
		grand += rec.TotalSales
	}
	for _, kind := range []PeriodKind{PeriodYearly, PeriodQuarterly, PeriodMonthly, PeriodDaily} {
		points, err := Trend(calendar, records, kind)
		if err != nil {
			t.Fatalf("trend %s: %v", kind, err)
		}
		var sum float64
		for _, p := range points {
			sum += p.Total
		}
		if math.Abs(sum-grand) > 1e-9 {
			t.Fatalf("%s buckets sum to %v, want %v", kind, sum, grand)
		}
	}
}

func TestTrendUnknownKind(t *testing.T) {
	records := []SalesRecord{{OrderDate: day("2021-01-01")}}
	calendar := mustCalendar(t, records)
	if _, err := Trend(calendar, records, PeriodKind(99)); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestParsePeriodKind(t *testing.T) {
	for _, input := range []string{"yearly", "Quarterly", " monthly ", "DAILY"} {
		if _, err := ParsePeriodKind(input); err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
	}
	if _, err := ParsePeriodKind("weekly"); !errors.Is(err, ErrUnknownPeriod) {
		t.Fatalf("expected ErrUnknownPeriod for weekly, got %v", err)
	}
}

func TestDailyMovingAverage(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-01-01"), TotalSales: 10},
		{OrderDate: day("2021-01-02"), TotalSales: 20},
		{OrderDate: day("2021-01-04"), TotalSales: 30},
	}
	calendar := mustCalendar(t, records)

	points := Daily(calendar, records)
	if len(points) != 4 {
		t.Fatalf("expected 4 days, got %d", len(points))
	}
	// Trailing average over at most 30 days; with 4 days the window is the
	// whole prefix.
	want := []float64{10, 15, 10, 15}
	for i, point := range points {
		if math.Abs(point.Smoothed-want[i]) > 1e-9 {
			t.Fatalf("smoothed[%d] = %v, want %v", i, point.Smoothed, want[i])
		}
	}
}

func TestDailyWindowSlides(t *testing.T) {
	var records []SalesRecord
	start := day("2021-01-01")
	for i := 0; i < 40; i++ {
		records = append(records, SalesRecord{
			OrderDate:  start.AddDate(0, 0, i),
			TotalSales: 1,
		})
	}
	calendar := mustCalendar(t, records)

	points := Daily(calendar, records)
	last := points[len(points)-1]
	if math.Abs(last.Smoothed-1) > 1e-9 {
		t.Fatalf("expected steady average 1, got %v", last.Smoothed)
	}
	// Day 31 onward must only see the trailing 30 days.
	if math.Abs(points[35].Smoothed-1) > 1e-9 {
		t.Fatalf("expected trailing window average 1, got %v", points[35].Smoothed)
	}
}

func TestMonthYearHeatmap(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-12-10"), TotalSales: 5},
		{OrderDate: day("2022-01-20"), TotalSales: 7},
		{OrderDate: day("2022-12-01"), TotalSales: 11},
	}
	calendar := mustCalendar(t, records)

	hm := MonthYearHeatmap(calendar, records)
	if len(hm.Years) != 2 || hm.Years[0] != 2021 || hm.Years[1] != 2022 {
		t.Fatalf("unexpected years %v", hm.Years)
	}
	// Spine covers Dec 2021 through Dec 2022, so all twelve months appear in
	// calendar order.
	if len(hm.Months) != 12 || hm.Months[0] != time.January {
		t.Fatalf("unexpected months %v", hm.Months)
	}

	monthRow := func(m time.Month) int {
		for i, month := range hm.Months {
			if month == m {
				return i
			}
		}
		t.Fatalf("month %s missing", m)
		return -1
	}
	if got := hm.Values[monthRow(time.December)][0]; got != 5 {
		t.Fatalf("Dec 2021 = %v, want 5", got)
	}
	if got := hm.Values[monthRow(time.December)][1]; got != 11 {
		t.Fatalf("Dec 2022 = %v, want 11", got)
	}
	if got := hm.Values[monthRow(time.January)][1]; got != 7 {
		t.Fatalf("Jan 2022 = %v, want 7", got)
	}
	// Cells outside the spine stay zero.
	if got := hm.Values[monthRow(time.January)][0]; got != 0 {
		t.Fatalf("Jan 2021 = %v, want 0", got)
	}
}
