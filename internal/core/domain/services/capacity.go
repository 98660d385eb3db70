package services

import (
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
)

// DayCapacity is the derived capacity picture of one calendar day.
type DayCapacity struct {
	Date kernel.Date

	// TotalCapacity is the sum of daily capacity of workers who are on for the day.
	TotalCapacity decimal.Decimal

	// ConsumedValue is the sum of prices of participating jobs on the day.
	ConsumedValue decimal.Decimal

	// AvailableWorkers counts the workers that contributed to TotalCapacity.
	AvailableWorkers int
}

// AvailableCapacity is TotalCapacity minus ConsumedValue. Negative means over capacity.
func (d DayCapacity) AvailableCapacity() decimal.Decimal {
	return d.TotalCapacity.Sub(d.ConsumedValue)
}

func (d DayCapacity) IsOverCapacity() bool {
	return d.ConsumedValue.GreaterThan(d.TotalCapacity)
}

// IsEligible reports whether jobs can be placed on the day at all.
func (d DayCapacity) IsEligible() bool {
	return d.TotalCapacity.IsPositive()
}

// CalculateDayCapacity combines roster, rota and the day's jobs.
//
// A worker counts when the rota resolves to on for the day (rota.DefaultStatus
// applies to missing records) and the worker's daily capacity is positive.
// Jobs outside pending/scheduled never consume capacity.
func CalculateDayCapacity(date kernel.Date, roster worker.Roster, r rota.Rota, jobs []*job.Job) DayCapacity {
	day := DayCapacity{
		Date:          date,
		TotalCapacity: decimal.Zero,
		ConsumedValue: decimal.Zero,
	}

	for _, w := range roster {
		if !w.CanBeScheduled() || r.Resolve(date, w.ID()) != rota.On {
			continue
		}
		day.TotalCapacity = day.TotalCapacity.Add(w.DailyCapacity())
		day.AvailableWorkers++
	}

	for _, j := range jobs {
		if !j.IsParticipating() {
			continue
		}
		day.ConsumedValue = day.ConsumedValue.Add(j.Price())
	}

	return day
}

// WeekCapacity is the ordered capacity profile of a week, Monday first.
type WeekCapacity struct {
	Week kernel.Week
	Days [kernel.DaysInWeek]DayCapacity
}

// AssembleWeekCapacity partitions jobs by the local date of their scheduled time and
// calculates each day. Jobs outside the week are ignored.
func AssembleWeekCapacity(week kernel.Week, jobs []*job.Job, roster worker.Roster, r rota.Rota) WeekCapacity {
	byDay := make(map[string][]*job.Job, kernel.DaysInWeek)
	for _, j := range jobs {
		key := j.ScheduledDate().String()
		byDay[key] = append(byDay[key], j)
	}

	wc := WeekCapacity{Week: week}
	for i, day := range week.Days() {
		wc.Days[i] = CalculateDayCapacity(day, roster, r, byDay[day.String()])
	}
	return wc
}

// EligibleDays returns the days with positive total capacity in Monday to Sunday order.
func (w WeekCapacity) EligibleDays() []DayCapacity {
	out := make([]DayCapacity, 0, kernel.DaysInWeek)
	for _, d := range w.Days {
		if d.IsEligible() {
			out = append(out, d)
		}
	}
	return out
}

// TotalCapacity sums the capacity of all seven days.
func (w WeekCapacity) TotalCapacity() decimal.Decimal {
	total := decimal.Zero
	for _, d := range w.Days {
		total = total.Add(d.TotalCapacity)
	}
	return total
}
