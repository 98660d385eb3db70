package commands

import (
	"errors"
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/guard"
)

var ErrDispatchTriggerCommandIsNotConstructed = errors.New(
	"DispatchTriggerCommand must be created via NewDispatchTriggerCommand constructor",
)

// TriggerKind names the change that makes weeks need re-planning.
type TriggerKind string

const (
	// TriggerJobAdded re-plans the look-ahead window after the current week.
	TriggerJobAdded TriggerKind = "job_added"
	// TriggerAvailabilityChanged re-plans the weeks containing the changed dates.
	TriggerAvailabilityChanged TriggerKind = "availability_changed"
	// TriggerDailyCapacityChanged re-plans the weeks containing the given dates.
	TriggerDailyCapacityChanged TriggerKind = "daily_capacity_changed"
	// TriggerScheduledSweep is the periodic run; it covers the same window as TriggerJobAdded.
	TriggerScheduledSweep TriggerKind = "scheduled_sweep"
)

// ParseTriggerKind converts the wire form of a trigger kind.
func ParseTriggerKind(s string) (TriggerKind, error) {
	kind := TriggerKind(s)
	switch kind {
	case TriggerJobAdded, TriggerAvailabilityChanged, TriggerDailyCapacityChanged, TriggerScheduledSweep:
		return kind, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("trigger kind", fmt.Errorf("unknown kind %q", s))
	}
}

// needsDates reports whether the kind is resolved from affected dates.
func (k TriggerKind) needsDates() bool {
	return k == TriggerAvailabilityChanged || k == TriggerDailyCapacityChanged
}

// DispatchTriggerCommand asks the dispatcher to re-plan every week a change affects.
type DispatchTriggerCommand struct {
	tenant tenant.Context
	kind   TriggerKind
	dates  []kernel.Date

	guard guard.ConstructorGuard
}

// NewDispatchTriggerCommand validates the trigger. Availability and capacity triggers need
// at least one affected date; the other kinds ignore dates.
func NewDispatchTriggerCommand(tc tenant.Context, kind TriggerKind, dates ...kernel.Date) (DispatchTriggerCommand, error) {
	if err := tc.Validate(); err != nil {
		return DispatchTriggerCommand{}, err
	}
	if _, err := ParseTriggerKind(string(kind)); err != nil {
		return DispatchTriggerCommand{}, err
	}
	if kind.needsDates() && len(dates) == 0 {
		return DispatchTriggerCommand{}, errs.NewValueIsRequiredError("affected dates")
	}
	for _, d := range dates {
		if err := d.Validate(); err != nil {
			return DispatchTriggerCommand{}, err
		}
	}

	return DispatchTriggerCommand{
		tenant: tc,
		kind:   kind,
		dates:  dates,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchTriggerCommand) Tenant() tenant.Context { return c.tenant }

func (c DispatchTriggerCommand) Kind() TriggerKind { return c.kind }

func (c DispatchTriggerCommand) Dates() []kernel.Date { return c.dates }

func (c DispatchTriggerCommand) Validate() error {
	return c.guard.Validate(ErrDispatchTriggerCommandIsNotConstructed)
}
