// Package queries contains read operations for retrieving planner state.
// Queries return read models shaped for the UI and never write.
package queries

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetWeekCapacityQueryIsNotConstructed = errors.New(
	"GetWeekCapacityQuery must be created via NewGetWeekCapacityQuery constructor",
)

// GetWeekCapacityQuery retrieves the capacity profile of one week.
//
// Example:
//
//	query, err := NewGetWeekCapacityQuery(tc, monday)
//	if err != nil {
//	    return err
//	}
//	profile, err := handler.Handle(ctx, query)
//	for _, day := range profile.Days {
//	    fmt.Printf("%s %s/%s\n", day.Label, day.ConsumedValue, day.TotalCapacity)
//	}
type GetWeekCapacityQuery struct {
	tenant tenant.Context
	week   kernel.Week

	guard guard.ConstructorGuard
}

func NewGetWeekCapacityQuery(tc tenant.Context, weekStart kernel.Date) (GetWeekCapacityQuery, error) {
	if err := tc.Validate(); err != nil {
		return GetWeekCapacityQuery{}, err
	}
	week, err := kernel.NewWeek(weekStart)
	if err != nil {
		return GetWeekCapacityQuery{}, err
	}
	return GetWeekCapacityQuery{tenant: tc, week: week, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWeekCapacityQuery) Tenant() tenant.Context { return q.tenant }

func (q GetWeekCapacityQuery) Week() kernel.Week { return q.week }

func (q GetWeekCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetWeekCapacityQueryIsNotConstructed)
}

// DayCapacityResponse is one day of the read model.
type DayCapacityResponse struct {
	Date             string
	Label            string
	TotalCapacity    decimal.Decimal
	ConsumedValue    decimal.Decimal
	Available        decimal.Decimal
	AvailableWorkers int
	Eligible         bool
	OverCapacity     bool
}

// GetWeekCapacityQueryResponse is the week read model, Monday first.
type GetWeekCapacityQueryResponse struct {
	WeekStart     string
	CurrentWeek   bool
	TotalCapacity decimal.Decimal
	Days          []DayCapacityResponse
}
