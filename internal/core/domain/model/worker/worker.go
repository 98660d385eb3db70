// Package worker models roster members as seen by the capacity engine.
// The roster is owned elsewhere; this package only reads it.
package worker

import (
	"errors"
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker")

// Worker is a member of the mobile workforce with a daily revenue capacity:
// the total job price the worker can absorb in one calendar day.
type Worker struct {
	id            kernel.UUID
	name          string
	dailyCapacity decimal.Decimal

	isConstructed bool
}

// NewWorker validates a roster entry. Daily capacity must not be negative.
func NewWorker(id kernel.UUID, name string, dailyCapacity decimal.Decimal) (Worker, error) {
	if dailyCapacity.IsNegative() {
		return Worker{}, errs.NewValueIsInvalidErrorWithCause(
			"daily capacity",
			fmt.Errorf("%s is negative", dailyCapacity),
		)
	}
	return RestoreWorker(id, name, dailyCapacity)
}

// RestoreWorker rebuilds a worker read from the roster store. Stored capacities are
// taken as they are; a non-positive capacity just makes the worker unschedulable.
func RestoreWorker(id kernel.UUID, name string, dailyCapacity decimal.Decimal) (Worker, error) {
	if err := id.Validate(); err != nil {
		return Worker{}, err
	}
	return Worker{
		id:            id,
		name:          name,
		dailyCapacity: dailyCapacity,
		isConstructed: true,
	}, nil
}

func (w Worker) Validate() error {
	if !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

func (w Worker) ID() kernel.UUID {
	return w.id
}

func (w Worker) Name() string {
	return w.name
}

func (w Worker) DailyCapacity() decimal.Decimal {
	return w.dailyCapacity
}

// WithDailyCapacity returns a copy of the worker with a new daily capacity.
func (w Worker) WithDailyCapacity(dailyCapacity decimal.Decimal) (Worker, error) {
	if err := w.Validate(); err != nil {
		return Worker{}, err
	}
	return NewWorker(w.id, w.name, dailyCapacity)
}

// CanBeScheduled reports whether the worker contributes to capacity at all.
func (w Worker) CanBeScheduled() bool {
	return w.dailyCapacity.IsPositive()
}

// Roster is the tenant's current set of workers in store order.
type Roster []Worker

// Schedulable returns the workers with a positive daily capacity.
func (r Roster) Schedulable() Roster {
	out := make(Roster, 0, len(r))
	for _, w := range r {
		if w.CanBeScheduled() {
			out = append(out, w)
		}
	}
	return out
}
