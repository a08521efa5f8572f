package analytics

import (
	"fmt"
	"time"
)

// CalendarEntry is one day of the gap-free spine spanning the observed order
// date range. The derived labels drive every period aggregate.
type CalendarEntry struct {
	Date        time.Time
	Year        int
	Quarter     int
	MonthName   string
	YearQuarter string
	YearMonth   string
}

// BuildCalendar generates one entry per day in [min(OrderDate), max(OrderDate)]
// inclusive: exactly (max-min).days+1 entries, strictly increasing by one day.
func BuildCalendar(records []SalesRecord) ([]CalendarEntry, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDateRange
	}
	minDate := dayOf(records[0].OrderDate)
	maxDate := minDate
	for _, rec := range records[1:] {
		d := dayOf(rec.OrderDate)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	days := int(maxDate.Sub(minDate).Hours()/24) + 1
	entries := make([]CalendarEntry, 0, days)
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		entries = append(entries, newCalendarEntry(d))
	}
	return entries, nil
}

func newCalendarEntry(d time.Time) CalendarEntry {
	year := d.Year()
	quarter := (int(d.Month())-1)/3 + 1
	month := d.Month().String()
	return CalendarEntry{
		Date:        d,
		Year:        year,
		Quarter:     quarter,
		MonthName:   month,
		YearQuarter: fmt.Sprintf("%d Qtr %d", year, quarter),
		YearMonth:   fmt.Sprintf("%d %s", year, month),
	}
}

// dayOf truncates a timestamp to its UTC calendar day. All joins key on this.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
