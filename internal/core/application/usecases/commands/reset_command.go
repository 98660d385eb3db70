package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/guard"
)

var (
	ErrResetDayCommandIsNotConstructed = errors.New(
		"ResetDayCommand must be created via NewResetDayCommand constructor",
	)
	ErrResetWeekCommandIsNotConstructed = errors.New(
		"ResetWeekCommand must be created via NewResetWeekCommand constructor",
	)
)

// ResetDayCommand clears ETA and worker pins of every planned job on one day.
type ResetDayCommand struct {
	tenant tenant.Context
	day    kernel.Date

	guard guard.ConstructorGuard
}

func NewResetDayCommand(tc tenant.Context, day kernel.Date) (ResetDayCommand, error) {
	if err := tc.Validate(); err != nil {
		return ResetDayCommand{}, err
	}
	if err := day.Validate(); err != nil {
		return ResetDayCommand{}, err
	}
	return ResetDayCommand{tenant: tc, day: day, guard: guard.NewConstructorGuard()}, nil
}

func (c ResetDayCommand) Tenant() tenant.Context { return c.tenant }

func (c ResetDayCommand) Day() kernel.Date { return c.day }

func (c ResetDayCommand) Validate() error {
	return c.guard.Validate(ErrResetDayCommandIsNotConstructed)
}

// ResetWeekCommand clears ETA and worker pins of planned jobs on the strictly future
// days of a week. Today and earlier days are left alone.
type ResetWeekCommand struct {
	tenant tenant.Context
	week   kernel.Week

	guard guard.ConstructorGuard
}

// NewResetWeekCommand accepts a Monday as weekStart.
func NewResetWeekCommand(tc tenant.Context, weekStart kernel.Date) (ResetWeekCommand, error) {
	if err := tc.Validate(); err != nil {
		return ResetWeekCommand{}, err
	}
	week, err := kernel.NewWeek(weekStart)
	if err != nil {
		return ResetWeekCommand{}, err
	}
	return ResetWeekCommand{tenant: tc, week: week, guard: guard.NewConstructorGuard()}, nil
}

func (c ResetWeekCommand) Tenant() tenant.Context { return c.tenant }

func (c ResetWeekCommand) Week() kernel.Week { return c.week }

func (c ResetWeekCommand) Validate() error {
	return c.guard.Validate(ErrResetWeekCommandIsNotConstructed)
}
