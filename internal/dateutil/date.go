package dateutil

import (
	"errors"
	"fmt"
	"time"
)

var ErrMalformedDate = errors.New("dateutil: malformed date")

const layout = "2006-01-02"

// Date is a plain calendar date. It carries no time-of-day and no zone,
// so adding days or diffing dates never crosses a DST boundary.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today snapshots the calendar date of the given instant in its own
// location. Callers capture it once and thread it through; the rest of
// the code never reads the clock.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Format returns the canonical YYYY-MM-DD form. Lexicographic order of
// this string equals chronological order, so it doubles as the storage
// and comparison key.
func (d Date) Format() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	y, m, day := t.Date()
	d := Date{Year: y, Month: m, Day: day}
	// time.Parse tolerates unpadded components; the canonical form does not.
	if d.Format() != s {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

// AddDays shifts the date by n calendar days, n may be negative.
// time.Date normalizes out-of-range days, which handles month, year and
// leap-year rollover.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// DaysBetween returns b - a in whole calendar days, signed.
func DaysBetween(a, b Date) int {
	return int(b.utc().Sub(a.utc()) / (24 * time.Hour))
}

func (d Date) Before(o Date) bool { return d.Format() < o.Format() }
func (d Date) After(o Date) bool  { return d.Format() > o.Format() }
func (d Date) Equal(o Date) bool  { return d == o }

// DisplayShort formats for compact presentation, e.g. "Jan 4".
func (d Date) DisplayShort() string {
	return d.utc().Format("Jan 2")
}

// DisplayFull formats for headers, e.g. "Thursday, January 4".
func (d Date) DisplayFull() string {
	return d.utc().Format("Monday, January 2")
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
