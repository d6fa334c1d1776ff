package entity

import (
	"fmt"
	"regexp"
	"time"
)

// monthPattern matches the YYYY-MM month parameter accepted by the API.
var monthPattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// Trend window bounds. Requests outside this range are clamped, not rejected.
const (
	MinTrendMonths     = 2
	MaxTrendMonths     = 12
	DefaultTrendMonths = 6
)

// CalendarMonth identifies a single billing month. It is always normalized:
// constructing one through NewCalendarMonth rolls month overflow into the year.
type CalendarMonth struct {
	Year  int
	Month time.Month
}

// NewCalendarMonth builds a normalized CalendarMonth. Out-of-range month values
// roll over exactly the way time.Date handles them (month 13 becomes January of
// the following year).
func NewCalendarMonth(year int, month time.Month) CalendarMonth {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return CalendarMonth{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) CalendarMonth {
	return CalendarMonth{Year: t.Year(), Month: t.Month()}
}

// Start returns the first day of the month at midnight UTC.
func (m CalendarMonth) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month, with exact year rollover.
func (m CalendarMonth) Next() CalendarMonth {
	return NewCalendarMonth(m.Year, m.Month+1)
}

// AddMonths returns the month n months after m (n may be negative).
func (m CalendarMonth) AddMonths(n int) CalendarMonth {
	return NewCalendarMonth(m.Year, m.Month+time.Month(n))
}

// Range returns the half-open [start, end) date range covering the month.
func (m CalendarMonth) Range() DateRange {
	return DateRange{Start: m.Start(), End: m.Next().Start()}
}

// String serializes the month as "YYYY-MM", the wire format used by the API.
func (m CalendarMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label formats the month for chart axes, e.g. "Mar 2025".
func (m CalendarMonth) Label() string {
	return m.Start().Format("Jan 2006")
}

// MarshalJSON encodes the month in its wire format.
func (m CalendarMonth) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// DateRange is a half-open [Start, End) interval where Start is the first day
// of a calendar month and End the first day of the following month.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Month returns the calendar month the range covers.
func (r DateRange) Month() CalendarMonth {
	return MonthOf(r.Start)
}

// ResolvePeriod turns an optional "YYYY-MM" month parameter into the date range
// to query. An empty month resolves to the current calendar month. A requested
// month that has not finished yet (the current month or any future month) is
// silently clamped to the current month, since Cost Explorer has no finalized
// data for it. A malformed month is a client error, reported before any
// upstream call is made.
func ResolvePeriod(month string, today time.Time) (DateRange, error) {
	current := MonthOf(today)
	if month == "" {
		return current.Range(), nil
	}

	m := monthPattern.FindStringSubmatch(month)
	if m == nil {
		return DateRange{}, ErrInvalidMonth
	}

	var year, mon int
	fmt.Sscanf(m[1], "%d", &year)
	fmt.Sscanf(m[2], "%d", &mon)

	requested := NewCalendarMonth(year, time.Month(mon))
	if !requested.Start().Before(current.Start()) {
		requested = current
	}
	return requested.Range(), nil
}

// TrendWindow produces count consecutive calendar-month ranges ending with the
// current (in-progress) month, oldest first. The count is clamped into
// [MinTrendMonths, MaxTrendMonths]. Unlike ResolvePeriod, the window
// deliberately includes the partial current month so the trend chart shows
// month-to-date spend.
func TrendWindow(count int, today time.Time) []DateRange {
	if count < MinTrendMonths {
		count = MinTrendMonths
	}
	if count > MaxTrendMonths {
		count = MaxTrendMonths
	}

	current := MonthOf(today)
	ranges := make([]DateRange, 0, count)
	for i := count - 1; i >= 0; i-- {
		ranges = append(ranges, current.AddMonths(-i).Range())
	}
	return ranges
}
