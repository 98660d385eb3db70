package commands

import (
	"errors"
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// ErrConcurrentModification is returned when another writer changed the week or one of
// its jobs between the planner's read and its commit. Nothing was written; retrying
// re-plans from fresh data.
var ErrConcurrentModification = errors.New("week was modified concurrently")

// writeError classifies a failure inside the commit transaction.
func writeError(operation string, err error) error {
	if errors.Is(err, errs.ErrVersionIsInvalid) {
		return fmt.Errorf("%w: %s: %w", ErrConcurrentModification, operation, err)
	}
	return errs.NewStoreWriteError(operation, err)
}
