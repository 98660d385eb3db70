// Package ports defines the persistence contracts of the round planner.
// Every method is scoped by tenant id; adapters must never return another tenant's data.
package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates.
type JobRepository interface {
	// Add persists a new job.
	Add(ctx context.Context, tenantID kernel.UUID, aggregate *job.Job) error

	// Update persists the planner-owned fields of a job: scheduled time, ETA and worker pin.
	// The stored row version must equal aggregate.Version(); otherwise a
	// VersionIsInvalidError is returned and nothing is written. The stored version is bumped.
	Update(ctx context.Context, tenantID kernel.UUID, aggregate *job.Job) error

	// Get retrieves a job by id. Returns ObjectNotFoundError when missing.
	Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*job.Job, error)

	// GetParticipatingInRange returns pending and scheduled jobs whose scheduled local date
	// lies within [from, to], ordered by scheduled time.
	GetParticipatingInRange(ctx context.Context, tenantID kernel.UUID, from, to kernel.Date) ([]*job.Job, error)

	// GetParticipatingOnDay returns pending and scheduled jobs scheduled on day.
	GetParticipatingOnDay(ctx context.Context, tenantID kernel.UUID, day kernel.Date) ([]*job.Job, error)
}
