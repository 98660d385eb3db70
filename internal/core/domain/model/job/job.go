package job

import (
	"errors"
	"fmt"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// DefaultHour and DefaultMinute give the time of day a job gets when it is moved
	// to another day by redistribution.
	DefaultHour   = 9
	DefaultMinute = 0

	// ETALayout is the format of a manual time-of-day override.
	ETALayout = "15:04"
)

var (
	// ErrJobIsNotConstructed is returned when a Job was not created through NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")

	// ErrJobIsNotParticipating is returned when the planner tries to mutate a job whose
	// status is outside pending/scheduled.
	ErrJobIsNotParticipating = errors.New("job status does not allow planning changes")
)

// Job is a single visit to a client on a calendar day. It is the aggregate the
// planner moves between days.
//
// Invariants:
//   - price is never negative and never changed by the planner
//   - only the date part of scheduledTime, the ETA and the worker pin are mutated,
//     and only while the status is pending or scheduled
//   - version increases with every persisted change and is used for optimistic locking
type Job struct {
	id            kernel.UUID
	clientID      kernel.UUID
	scheduledTime time.Time
	price         decimal.Decimal
	status        Status

	// eta is a manual time-of-day override ("15:04"), nil when unset
	eta *string

	// workerID pins the job to a worker outside automatic allocation, nil when unset
	workerID *kernel.UUID

	version int

	isConstructed bool
}

// NewJob creates a job for a client on a given date and time.
//
// Example:
//
//	j, err := job.NewJob(kernel.NewUUID(), clientID, day.At(9, 0), decimal.NewFromInt(50), job.Pending)
//	if err != nil {
//	    return err
//	}
func NewJob(
	id kernel.UUID,
	clientID kernel.UUID,
	scheduledTime time.Time,
	price decimal.Decimal,
	status Status,
) (*Job, error) {
	return RestoreJob(id, clientID, scheduledTime, price, status, nil, nil, 0)
}

// RestoreJob rebuilds a job from persistence including overrides and version.
func RestoreJob(
	id kernel.UUID,
	clientID kernel.UUID,
	scheduledTime time.Time,
	price decimal.Decimal,
	status Status,
	eta *string,
	workerID *kernel.UUID,
	version int,
) (*Job, error) {
	j := &Job{
		status:        status,
		scheduledTime: scheduledTime,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setClientID(clientID),
		j.setPrice(price),
		j.setETA(eta),
		j.setWorker(workerID),
		status.Validate(),
		j.validateScheduledTime(),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the Job was constructed through NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) ID() kernel.UUID {
	return j.id
}

func (j *Job) ClientID() kernel.UUID {
	return j.clientID
}

func (j *Job) ScheduledTime() time.Time {
	return j.scheduledTime
}

// ScheduledDate returns the calendar day of the scheduled time in its own location.
func (j *Job) ScheduledDate() kernel.Date {
	return kernel.DateOf(j.scheduledTime)
}

func (j *Job) Price() decimal.Decimal {
	return j.price
}

func (j *Job) Status() Status {
	return j.status
}

// ETA returns the manual time-of-day override, nil when unset.
func (j *Job) ETA() *string {
	return j.eta
}

// Worker returns the pinned worker, nil when unset.
func (j *Job) Worker() *kernel.UUID {
	return j.workerID
}

func (j *Job) Version() int {
	return j.version
}

// IsParticipating reports whether the planner may read this job into capacity and move it.
func (j *Job) IsParticipating() bool {
	return j.status.IsParticipating()
}

// HasOverrides reports whether an ETA or a worker pin is set.
func (j *Job) HasOverrides() bool {
	return j.eta != nil || j.workerID != nil
}

// RescheduleTo moves the job to target at the default time of day. Moving invalidates
// the same-day ETA, so it is cleared; the worker pin is kept.
// Returns false without changes when the job is already on target.
func (j *Job) RescheduleTo(target kernel.Date) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if !j.IsParticipating() {
		return false, fmt.Errorf("%w: %s", ErrJobIsNotParticipating, j.status)
	}

	if j.ScheduledDate().Equal(target) {
		return false, nil
	}

	j.scheduledTime = target.At(DefaultHour, DefaultMinute)
	j.eta = nil
	return true, nil
}

// ClearOverrides drops the ETA and worker pin so the job falls back under automatic
// capacity control. Returns false when there was nothing to clear.
func (j *Job) ClearOverrides() (bool, error) {
	if !j.IsParticipating() {
		return false, fmt.Errorf("%w: %s", ErrJobIsNotParticipating, j.status)
	}
	if !j.HasOverrides() {
		return false, nil
	}

	j.eta = nil
	j.workerID = nil
	return true, nil
}

// SetETA pins the job to a time of day ("15:04").
func (j *Job) SetETA(eta string) error {
	if !j.IsParticipating() {
		return fmt.Errorf("%w: %s", ErrJobIsNotParticipating, j.status)
	}
	return j.setETA(&eta)
}

// AssignWorker pins the job to a worker.
func (j *Job) AssignWorker(workerID kernel.UUID) error {
	if !j.IsParticipating() {
		return fmt.Errorf("%w: %s", ErrJobIsNotParticipating, j.status)
	}
	return j.setWorker(&workerID)
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	j.clientID = id
	return nil
}

func (j *Job) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	j.price = price
	return nil
}

func (j *Job) setETA(eta *string) error {
	if eta == nil {
		j.eta = nil
		return nil
	}
	if _, err := time.Parse(ETALayout, *eta); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("eta is invalid", err)
	}
	v := *eta
	j.eta = &v
	return nil
}

func (j *Job) setWorker(workerID *kernel.UUID) error {
	if workerID == nil {
		j.workerID = nil
		return nil
	}
	if err := workerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("worker assignment is invalid", err)
	}
	v := *workerID
	j.workerID = &v
	return nil
}

func (j *Job) validateScheduledTime() error {
	if j.scheduledTime.IsZero() {
		return errs.NewValueIsRequiredError("scheduled time")
	}
	return nil
}
