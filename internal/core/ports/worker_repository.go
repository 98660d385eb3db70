package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"
)

// WorkerRepository is the roster service contract.
type WorkerRepository interface {
	Add(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error

	// Update persists a changed daily capacity.
	Update(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error

	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (worker.Worker, error)

	// GetRoster returns every worker of the tenant ordered by name.
	GetRoster(ctx context.Context, tenantID kernel.UUID) (worker.Roster, error)

	// GetTenantsWithRoster lists tenants that have at least one worker. Used by the
	// scheduled sweep, which runs outside any request tenant context.
	GetTenantsWithRoster(ctx context.Context) ([]kernel.UUID, error)
}

// RotaRepository is the availability service contract.
type RotaRepository interface {
	// GetRange returns all explicit records dated within [from, to].
	GetRange(ctx context.Context, tenantID kernel.UUID, from, to kernel.Date) (rota.Rota, error)

	// Upsert writes one (date, worker) status. Writing the same record twice is a no-op.
	Upsert(ctx context.Context, tenantID kernel.UUID, record rota.Record) error
}
