package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PeriodKind enumerates the supported trend granularities. The set is closed:
// dispatch happens by switch and an unknown kind is a hard error, never a
// silent fallback.
type PeriodKind int

const (
	PeriodYearly PeriodKind = iota
	PeriodQuarterly
	PeriodMonthly
	PeriodDaily
)

func (k PeriodKind) String() string {
	switch k {
	case PeriodYearly:
		return "yearly"
	case PeriodQuarterly:
		return "quarterly"
	case PeriodMonthly:
		return "monthly"
	case PeriodDaily:
		return "daily"
	default:
		return "unknown"
	}
}

// ParsePeriodKind maps a query value onto the closed enum.
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yearly":
		return PeriodYearly, nil
	case "quarterly":
		return PeriodQuarterly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "daily":
		return PeriodDaily, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// TrendPoint is one period bucket of summed TotalSales.
type TrendPoint struct {
	Label string
	Total float64
}

// DailyPoint is one spine day with its raw and smoothed totals.
type DailyPoint struct {
	Date     time.Time
	Total    float64
	Smoothed float64
}

// Heatmap is the month-by-year pivot of summed TotalSales. Months are in
// calendar order (January..December) restricted to months present in the
// spine; Values is dense and zero-filled, indexed [month][year].
type Heatmap struct {
	Months []time.Month
	Years  []int
	Values [][]float64
}

// smoothingWindow is the trailing moving-average span for the daily trend.
const smoothingWindow = 30

// salesByDay sums TotalSales per calendar day. This is the right side of the
// spine join; days absent from the map aggregate as zero.
func salesByDay(records []SalesRecord) map[time.Time]float64 {
	byDay := make(map[time.Time]float64, len(records))
	for _, rec := range records {
		byDay[dayOf(rec.OrderDate)] += rec.TotalSales
	}
	return byDay
}

// Trend left-joins the calendar spine against sales and sums TotalSales per
// period label. The spine drives the output, so buckets appear in
// chronological order and periods without sales still show up with zero.
func Trend(calendar []CalendarEntry, records []SalesRecord, kind PeriodKind) ([]TrendPoint, error) {
	byDay := salesByDay(records)

	var points []TrendPoint
	index := make(map[string]int)
	for _, entry := range calendar {
		var label string
		switch kind {
		case PeriodYearly:
			label = strconv.Itoa(entry.Year)
		case PeriodQuarterly:
			label = entry.YearQuarter
		case PeriodMonthly:
			label = entry.YearMonth
		case PeriodDaily:
			label = entry.Date.Format("2006-01-02")
		default:
			return nil, fmt.Errorf("%w: %d", ErrUnknownPeriod, kind)
		}
		pos, ok := index[label]
		if !ok {
			pos = len(points)
			index[label] = pos
			points = append(points, TrendPoint{Label: label})
		}
		points[pos].Total += byDay[entry.Date]
	}
	return points, nil
}

// Daily returns the spine-joined daily totals with a trailing moving average
// of up to smoothingWindow days applied for chart smoothing.
func Daily(calendar []CalendarEntry, records []SalesRecord) []DailyPoint {
	byDay := salesByDay(records)

	points := make([]DailyPoint, len(calendar))
	var running float64
	for i, entry := range calendar {
		total := byDay[entry.Date]
		running += total
		span := i + 1
		if span > smoothingWindow {
			running -= points[i-smoothingWindow].Total
			span = smoothingWindow
		}
		points[i] = DailyPoint{
			Date:     entry.Date,
			Total:    total,
			Smoothed: running / float64(span),
		}
	}
	return points
}

// MonthYearHeatmap pivots daily totals into month rows by year columns.
func MonthYearHeatmap(calendar []CalendarEntry, records []SalesRecord) Heatmap {
	byDay := salesByDay(records)

	yearCol := make(map[int]int)
	var years []int
	monthSeen := make(map[time.Month]bool)
	for _, entry := range calendar {
		if _, ok := yearCol[entry.Year]; !ok {
			yearCol[entry.Year] = len(years)
			years = append(years, entry.Year)
		}
		monthSeen[entry.Date.Month()] = true
	}

	monthRow := make(map[time.Month]int)
	var months []time.Month
	for m := time.January; m <= time.December; m++ {
		if monthSeen[m] {
			monthRow[m] = len(months)
			months = append(months, m)
		}
	}

	values := make([][]float64, len(months))
	for i := range values {
		values[i] = make([]float64, len(years))
	}
	for _, entry := range calendar {
		values[monthRow[entry.Date.Month()]][yearCol[entry.Year]] += byDay[entry.Date]
	}
	return Heatmap{Months: months, Years: years, Values: values}
}
