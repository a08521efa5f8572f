package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestBuildCalendarSpansRangeInclusive(t *testing.T) {
	records := []SalesRecord{
		{OrderDate: day("2021-12-30")},
		{OrderDate: day("2022-01-02")},
		{OrderDate: day("2021-12-31")},
	}

	entries, err := BuildCalendar(records)
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 days, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i].Date.Equal(entries[i-1].Date.AddDate(0, 0, 1)) {
			t.Fatalf("calendar has a gap between %v and %v", entries[i-1].Date, entries[i].Date)
		}
	}
	if !entries[0].Date.Equal(day("2021-12-30")) {
		t.Fatalf("expected spine to start at min date, got %v", entries[0].Date)
	}
	if !entries[3].Date.Equal(day("2022-01-02")) {
		t.Fatalf("expected spine to end at max date, got %v", entries[3].Date)
	}
}

func TestBuildCalendarLabels(t *testing.T) {
	entries, err := BuildCalendar([]SalesRecord{{OrderDate: day("2021-05-15")}})
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	entry := entries[0]
	if entry.Year != 2021 {
		t.Fatalf("expected year 2021, got %d", entry.Year)
	}
	if entry.Quarter != 2 {
		t.Fatalf("expected quarter 2, got %d", entry.Quarter)
	}
	if entry.YearQuarter != "2021 Qtr 2" {
		t.Fatalf("unexpected quarter label %q", entry.YearQuarter)
	}
	if entry.YearMonth != "2021 May" {
		t.Fatalf("unexpected month label %q", entry.YearMonth)
	}
	if entry.MonthName != "May" {
		t.Fatalf("unexpected month name %q", entry.MonthName)
	}
}

func TestBuildCalendarQuarterBoundaries(t *testing.T) {
	cases := map[string]int{
		"2021-01-01": 1,
		"2021-03-31": 1,
		"2021-04-01": 2,
		"2021-06-30": 2,
		"2021-07-01": 3,
		"2021-09-30": 3,
		"2021-10-01": 4,
		"2021-12-31": 4,
	}
	for date, want := range cases {
		entries, err := BuildCalendar([]SalesRecord{{OrderDate: day(date)}})
		if err != nil {
			t.Fatalf("build calendar for %s: %v", date, err)
		}
		if entries[0].Quarter != want {
			t.Errorf("quarter of %s = %d, want %d", date, entries[0].Quarter, want)
		}
	}
}

func TestBuildCalendarEmpty(t *testing.T) {
	if _, err := BuildCalendar(nil); !errors.Is(err, ErrEmptyDateRange) {
		t.Fatalf("expected ErrEmptyDateRange, got %v", err)
	}
}

func TestBuildCalendarNormalisesTimestamps(t *testing.T) {
	noon := time.Date(2021, 3, 4, 12, 30, 0, 0, time.UTC)
	entries, err := BuildCalendar([]SalesRecord{{OrderDate: noon}})
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}
	if !entries[0].Date.Equal(day("2021-03-04")) {
		t.Fatalf("expected midnight day, got %v", entries[0].Date)
	}
}
