package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
)

// WeekVersionRepository stores a monotonically increasing version per (tenant, week).
// Every batch that rewrites a week bumps it; a planner that read version n can only
// commit while the version is still n.
type WeekVersionRepository interface {
	// Get returns the current version, 0 when the week was never written.
	Get(ctx context.Context, tenantID kernel.UUID, week kernel.Week) (int64, error)

	// CompareAndBump sets the version to expected+1 if it currently equals expected.
	// Returns VersionIsInvalidError when another writer got there first.
	CompareAndBump(ctx context.Context, tenantID kernel.UUID, week kernel.Week, expected int64) (int64, error)
}
