package kernel

import (
	"fmt"
	"time"

	"roundplanner/internal/pkg/errs"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

// Date is a calendar day in a specific location. It is stored as local midnight,
// so two Dates are the same day when their year, month and day match.
//
// The zero value is not a valid day; use NewDate, DateOf or ParseDate.
type Date struct {
	t time.Time
}

// NewDate returns the day y-m-d in loc. Out of range values are normalized
// the way time.Date normalizes them (e.g. October 32 is November 1).
func NewDate(year int, month time.Month, day int, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d, t.Location())
}

// ParseDate parses a YYYY-MM-DD string as a day in loc.
func ParseDate(s string, loc *time.Location) (Date, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Validate rejects the zero Date.
func (d Date) Validate() error {
	if d.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	return nil
}

// Time returns local midnight of the day.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Location() *time.Location {
	return d.t.Location()
}

// At returns the instant hour:minute on this day in the day's location.
func (d Date) At(hour, minute int) time.Time {
	y, m, day := d.t.Date()
	return time.Date(y, m, day, hour, minute, 0, 0, d.t.Location())
}

// AddDays moves by whole calendar days; DST transitions do not shift the result.
func (d Date) AddDays(n int) Date {
	y, m, day := d.t.Date()
	return NewDate(y, m, day+n, d.t.Location())
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Date) Equal(other Date) bool {
	return d.compare(other) == 0
}

func (d Date) Before(other Date) bool {
	return d.compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.compare(other) > 0
}

func (d Date) compare(other Date) int {
	y1, m1, d1 := d.t.Date()
	y2, m2, d2 := other.t.Date()
	switch {
	case y1 != y2:
		return y1 - y2
	case m1 != m2:
		return int(m1) - int(m2)
	default:
		return d1 - d2
	}
}

// String returns the day as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Label is the human-readable form used in results and warnings, e.g. "Mon 2026-10-19".
func (d Date) Label() string {
	return fmt.Sprintf("%s %s", d.t.Format("Mon"), d.String())
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
