package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/kernel"
)

// MaxClientLookup is the largest id set GetByIDs accepts in one call.
const MaxClientLookup = 30

// ClientRepository defines the read contract for clients.
type ClientRepository interface {
	Add(ctx context.Context, tenantID kernel.UUID, c client.Client) error

	// GetByIDs returns the clients found among ids. Unknown ids are silently absent from
	// the result; callers detect them by comparing. At most MaxClientLookup ids per call.
	GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]client.Client, error)
}
