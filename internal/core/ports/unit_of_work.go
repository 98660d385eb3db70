package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
//
// Repositories read through the transaction once Begin was called and through the
// plain connection before that. Reads that run concurrently must happen before Begin.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op without one.
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	ClientRepository() ClientRepository
	WorkerRepository() WorkerRepository
	RotaRepository() RotaRepository
	WeekVersionRepository() WeekVersionRepository
}
