package commands

import (
	"errors"
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSetDailyCapacityCommandIsNotConstructed = errors.New(
	"SetDailyCapacityCommand must be created via NewSetDailyCapacityCommand constructor",
)

// SetDailyCapacityCommand changes a worker's daily capacity. effective is the date the
// change is reported against; its week is re-planned.
type SetDailyCapacityCommand struct {
	tenant    tenant.Context
	workerID  kernel.UUID
	capacity  decimal.Decimal
	effective kernel.Date

	guard guard.ConstructorGuard
}

func NewSetDailyCapacityCommand(
	tc tenant.Context,
	workerID kernel.UUID,
	capacity decimal.Decimal,
	effective kernel.Date,
) (SetDailyCapacityCommand, error) {
	if err := tc.Validate(); err != nil {
		return SetDailyCapacityCommand{}, err
	}
	if err := workerID.Validate(); err != nil {
		return SetDailyCapacityCommand{}, err
	}
	if capacity.IsNegative() {
		return SetDailyCapacityCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"daily capacity", fmt.Errorf("%s is negative", capacity))
	}
	if err := effective.Validate(); err != nil {
		return SetDailyCapacityCommand{}, err
	}

	return SetDailyCapacityCommand{
		tenant:    tc,
		workerID:  workerID,
		capacity:  capacity,
		effective: effective,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDailyCapacityCommand) Tenant() tenant.Context { return c.tenant }

func (c SetDailyCapacityCommand) WorkerID() kernel.UUID { return c.workerID }

func (c SetDailyCapacityCommand) Capacity() decimal.Decimal { return c.capacity }

func (c SetDailyCapacityCommand) Effective() kernel.Date { return c.effective }

func (c SetDailyCapacityCommand) Validate() error {
	return c.guard.Validate(ErrSetDailyCapacityCommandIsNotConstructed)
}
