package kernel

import (
	"fmt"
	"time"

	"roundplanner/internal/pkg/errs"
)

// DaysInWeek is the fixed length of a planning week.
const DaysInWeek = 7

// Week is a Monday-aligned calendar week. Index 0 of Days is Monday, index 6 is Sunday.
type Week struct {
	start Date
}

// WeekOf returns the week that contains d.
func WeekOf(d Date) Week {
	offset := (int(d.Weekday()) + DaysInWeek - 1) % DaysInWeek
	return Week{start: d.AddDays(-offset)}
}

// CurrentWeek returns the week containing now, evaluated in loc.
func CurrentWeek(now time.Time, loc *time.Location) Week {
	if loc == nil {
		loc = time.Local
	}
	return WeekOf(DateOf(now.In(loc)))
}

// NewWeek accepts only a Monday as week start.
func NewWeek(start Date) (Week, error) {
	if err := start.Validate(); err != nil {
		return Week{}, err
	}
	if start.Weekday() != time.Monday {
		return Week{}, errs.NewValueIsInvalidErrorWithCause(
			"week start",
			fmt.Errorf("%s is a %s, not a Monday", start, start.Weekday()),
		)
	}
	return Week{start: start}, nil
}

func (w Week) Start() Date {
	return w.start
}

// End returns the Sunday of the week.
func (w Week) End() Date {
	return w.start.AddDays(DaysInWeek - 1)
}

func (w Week) IsZero() bool {
	return w.start.IsZero()
}

// Days returns Monday through Sunday.
func (w Week) Days() [DaysInWeek]Date {
	var days [DaysInWeek]Date
	for i := range days {
		days[i] = w.start.AddDays(i)
	}
	return days
}

// Contains reports whether d falls on one of the week's seven days.
func (w Week) Contains(d Date) bool {
	return !d.Before(w.start) && !d.After(w.End())
}

// AddWeeks shifts the week by n whole weeks.
func (w Week) AddWeeks(n int) Week {
	return Week{start: w.start.AddDays(n * DaysInWeek)}
}

func (w Week) Next() Week {
	return w.AddWeeks(1)
}

func (w Week) Equal(other Week) bool {
	return w.start.Equal(other.start)
}

// IsCurrent reports whether the week contains now in the week's location.
func (w Week) IsCurrent(now time.Time) bool {
	return w.Equal(CurrentWeek(now, w.start.Location()))
}

// String returns the week start as YYYY-MM-DD.
func (w Week) String() string {
	return w.start.String()
}

func (w Week) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}
