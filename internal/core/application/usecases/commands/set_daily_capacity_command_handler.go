package commands

import (
	"context"

	"roundplanner/internal/pkg/errs"
)

// SetDailyCapacityCommandHandler updates the roster entry and dispatches
// daily_capacity_changed for the effective date.
type SetDailyCapacityCommandHandler struct {
	uowFactory RosterUoWFactory
	dispatcher TriggerHandler
}

func NewSetDailyCapacityCommandHandler(uowFactory RosterUoWFactory, dispatcher TriggerHandler) SetDailyCapacityCommandHandler {
	return SetDailyCapacityCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher}
}

func (h SetDailyCapacityCommandHandler) Handle(ctx context.Context, command SetDailyCapacityCommand) (AggregateReport, error) {
	if err := command.Validate(); err != nil {
		return AggregateReport{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return AggregateReport{}, err
	}
	tenantID := command.Tenant().ID()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("begin", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkerRepository()
	w, err := repo.Get(ctx, tenantID, command.WorkerID())
	if err != nil {
		return AggregateReport{}, err
	}
	w, err = w.WithDailyCapacity(command.Capacity())
	if err != nil {
		return AggregateReport{}, err
	}
	if err = repo.Update(ctx, tenantID, w); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("update worker", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("commit", err)
	}

	trigger, err := NewDispatchTriggerCommand(command.Tenant(), TriggerDailyCapacityChanged, command.Effective())
	if err != nil {
		return AggregateReport{}, err
	}
	return h.dispatcher.Handle(ctx, trigger)
}
