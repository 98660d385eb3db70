// Package commands contains the planner's write operations: redistribution, manual
// reset, trigger dispatch and the availability and capacity updates that feed them.
// Handlers read, decide in a domain service, then write once in a single transaction.
package commands

import (
	"context"

	"roundplanner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	RotaRepoFactory interface {
		RotaRepository() ports.RotaRepository
	}

	WeekVersionRepoFactory interface {
		WeekVersionRepository() ports.WeekVersionRepository
	}

	// PlanningUoW covers everything a redistribution or reset touches.
	//
	// Example:
	//   uow := factory.Create()
	//   defer uow.Rollback(ctx)
	//
	//   jobs, err := uow.JobRepository().GetParticipatingInRange(ctx, tenantID, from, to)
	//   // ... plan
	//   err = uow.Begin(ctx)
	//   _, err = uow.WeekVersionRepository().CompareAndBump(ctx, tenantID, week, version)
	//   err = uow.JobRepository().Update(ctx, tenantID, moved)
	//   err = uow.Commit(ctx)
	PlanningUoW interface {
		TxManager
		JobRepoFactory
		ClientRepoFactory
		WorkerRepoFactory
		RotaRepoFactory
		WeekVersionRepoFactory
	}

	PlanningUoWFactory interface {
		Create() PlanningUoW
	}

	// RotaUoW is used for availability writes.
	RotaUoW interface {
		TxManager
		RotaRepoFactory
	}

	RotaUoWFactory interface {
		Create() RotaUoW
	}

	// RosterUoW is used for daily capacity writes.
	RosterUoW interface {
		TxManager
		WorkerRepoFactory
	}

	RosterUoWFactory interface {
		Create() RosterUoW
	}
)
