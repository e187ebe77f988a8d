package valueobject

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ---------------------------------------------------------------------------
// Date – calendar date without time-of-day or location
// ---------------------------------------------------------------------------

// Date is a calendar day. It carries no clock time and no time zone, so
// comparisons never shift across midnight.
type Date struct {
	civil.Date
}

// NewDate builds a Date from its parts. The parts must form a real day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{civil.Date{Year: year, Month: month, Day: day}}
	if !d.IsValid() {
		return Date{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return d, nil
}

// MustDate is NewDate for literals in tests and package-level values.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses an ISO 8601 calendar date ("2006-01-02").
func ParseDate(s string) (Date, error) {
	cd, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{cd}, nil
}

// DateOf returns the calendar day of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date{civil.DateOf(t.In(loc))}
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.Date == other.Date
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{d.Date.AddDays(n)}
}

// DaysSince returns the signed number of days from other to d.
func (d Date) DaysSince(other Date) int {
	return d.Date.DaysSince(other.Date)
}

// MonthDay returns the date that falls `months` calendar months after d's
// month, on the requested day clamped to the last day of that month.
func (d Date) MonthDay(months, day int) Date {
	first := time.Date(d.Year, d.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return Date{civil.Date{Year: first.Year(), Month: first.Month(), Day: day}}
}

// Time returns midnight UTC on d, for storage drivers that only speak time.Time.
func (d Date) Time() time.Time {
	return d.In(time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MaxDate returns the later of a and b.
func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// MinDate returns the earlier of a and b.
func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}
