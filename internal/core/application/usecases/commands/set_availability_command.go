package commands

import (
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand records whether a worker is on, off or not applicable on a day.
type SetAvailabilityCommand struct {
	tenant tenant.Context
	record rota.Record

	guard guard.ConstructorGuard
}

func NewSetAvailabilityCommand(
	tc tenant.Context,
	date kernel.Date,
	workerID kernel.UUID,
	status rota.Status,
) (SetAvailabilityCommand, error) {
	if err := tc.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}
	record, err := rota.NewRecord(date, workerID, status)
	if err != nil {
		return SetAvailabilityCommand{}, err
	}
	return SetAvailabilityCommand{tenant: tc, record: record, guard: guard.NewConstructorGuard()}, nil
}

func (c SetAvailabilityCommand) Tenant() tenant.Context { return c.tenant }

func (c SetAvailabilityCommand) Record() rota.Record { return c.record }

func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}
