package commands

import (
	"context"

	"roundplanner/internal/pkg/errs"
)

// SetAvailabilityCommandHandler writes the rota record and then calls the dispatcher
// directly for the affected week.
type SetAvailabilityCommandHandler struct {
	uowFactory RotaUoWFactory
	dispatcher TriggerHandler
}

func NewSetAvailabilityCommandHandler(uowFactory RotaUoWFactory, dispatcher TriggerHandler) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{uowFactory: uowFactory, dispatcher: dispatcher}
}

// Handle returns the dispatch report. A failed write returns before any dispatch.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, command SetAvailabilityCommand) (AggregateReport, error) {
	if err := command.Validate(); err != nil {
		return AggregateReport{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return AggregateReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("begin", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record := command.Record()
	if err := uow.RotaRepository().Upsert(ctx, command.Tenant().ID(), record); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("upsert rota record", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return AggregateReport{}, errs.NewStoreWriteError("commit", err)
	}

	trigger, err := NewDispatchTriggerCommand(command.Tenant(), TriggerAvailabilityChanged, record.Date)
	if err != nil {
		return AggregateReport{}, err
	}
	return h.dispatcher.Handle(ctx, trigger)
}
