package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/guard"
)

var ErrRedistributeWeekCommandIsNotConstructed = errors.New(
	"RedistributeWeekCommand must be created via NewRedistributeWeekCommand constructor",
)

// RedistributeWeekCommand asks the planner to lay a week's jobs out again in round order.
//
// Example:
//
//	cmd, err := NewRedistributeWeekCommand(tc, monday, false)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type RedistributeWeekCommand struct {
	tenant tenant.Context
	week   kernel.Week
	force  bool

	guard guard.ConstructorGuard
}

// NewRedistributeWeekCommand validates the tenant and the week start, which must be a Monday.
// force lifts the current-week guard and is reserved for explicit manual actions.
func NewRedistributeWeekCommand(tc tenant.Context, weekStart kernel.Date, force bool) (RedistributeWeekCommand, error) {
	if err := tc.Validate(); err != nil {
		return RedistributeWeekCommand{}, err
	}
	week, err := kernel.NewWeek(weekStart)
	if err != nil {
		return RedistributeWeekCommand{}, err
	}

	return RedistributeWeekCommand{
		tenant: tc,
		week:   week,
		force:  force,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RedistributeWeekCommand) Tenant() tenant.Context {
	return c.tenant
}

func (c RedistributeWeekCommand) Week() kernel.Week {
	return c.week
}

func (c RedistributeWeekCommand) Force() bool {
	return c.force
}

func (c RedistributeWeekCommand) Validate() error {
	return c.guard.Validate(ErrRedistributeWeekCommandIsNotConstructed)
}
