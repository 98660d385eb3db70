package job

import (
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// Status represents the lifecycle state of a job.
//
// Only Pending and Scheduled jobs take part in redistribution, capacity
// consumption and manual reset. Every other status is final as far as the
// planner is concerned and the job is never touched.
//
//	Pending ──> Scheduled ──> InProgress ──> Completed ──> Accounted ──> Paid
//	   │            │
//	   └────────────┴──> Cancelled
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending jobs are booked but not yet confirmed on the round.
	Pending

	// Scheduled jobs are confirmed for their day.
	Scheduled

	// InProgress jobs are being worked on.
	InProgress

	// Completed jobs are done and awaiting accounting.
	Completed

	// Cancelled jobs will not be carried out.
	Cancelled

	// Accounted jobs have been invoiced.
	Accounted

	// Paid jobs have been settled.
	Paid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Scheduled:  "scheduled",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		Accounted:  "accounted",
		Paid:       "paid",
	}
}

// ParseStatus converts the stored form of a status back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Paid {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stored form, e.g. "in_progress".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsParticipating reports whether jobs in this status are planned by the engine.
func (s Status) IsParticipating() bool {
	return s == Pending || s == Scheduled
}

// ParticipatingStatuses lists the statuses the engine reads and mutates.
func ParticipatingStatuses() []Status {
	return []Status{Pending, Scheduled}
}
