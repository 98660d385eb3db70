// Package rota models per-day, per-worker availability.
package rota

import (
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"
)

// Status is a worker's availability on one calendar day.
type Status string

const (
	On            Status = "on"
	Off           Status = "off"
	NotApplicable Status = "n/a"
)

// DefaultStatus applies to every (day, worker) pair without an explicit record:
// a worker is available unless the rota says otherwise.
const DefaultStatus = On

// ParseStatus converts the stored or wire form of a status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case On, Off, NotApplicable:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("rota status", fmt.Errorf("%q is not one of on, off, n/a", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

// Record is one explicit availability entry.
type Record struct {
	Date     kernel.Date
	WorkerID kernel.UUID
	Status   Status
}

// NewRecord validates an availability entry.
func NewRecord(date kernel.Date, workerID kernel.UUID, status Status) (Record, error) {
	if err := date.Validate(); err != nil {
		return Record{}, err
	}
	if err := workerID.Validate(); err != nil {
		return Record{}, err
	}
	if err := status.Validate(); err != nil {
		return Record{}, err
	}
	return Record{Date: date, WorkerID: workerID, Status: status}, nil
}

// Rota maps day -> worker -> status for the explicit records of a date range.
type Rota struct {
	entries map[string]map[kernel.UUID]Status
}

// New builds a rota from explicit records. Later records for the same (day, worker) win.
func New(records ...Record) Rota {
	r := Rota{entries: make(map[string]map[kernel.UUID]Status)}
	for _, rec := range records {
		r.set(rec)
	}
	return r
}

func (r Rota) set(rec Record) {
	day := rec.Date.String()
	if r.entries[day] == nil {
		r.entries[day] = make(map[kernel.UUID]Status)
	}
	r.entries[day][rec.WorkerID] = rec.Status
}

// Lookup returns the explicit status, if any.
func (r Rota) Lookup(date kernel.Date, workerID kernel.UUID) (Status, bool) {
	s, ok := r.entries[date.String()][workerID]
	return s, ok
}

// Resolve returns the explicit status or DefaultStatus.
func (r Rota) Resolve(date kernel.Date, workerID kernel.UUID) Status {
	if s, ok := r.Lookup(date, workerID); ok {
		return s
	}
	return DefaultStatus
}

// Day returns the explicit records of one day keyed by worker.
func (r Rota) Day(date kernel.Date) map[kernel.UUID]Status {
	out := make(map[kernel.UUID]Status, len(r.entries[date.String()]))
	for id, s := range r.entries[date.String()] {
		out[id] = s
	}
	return out
}

// Len returns the number of explicit records.
func (r Rota) Len() int {
	n := 0
	for _, day := range r.entries {
		n += len(day)
	}
	return n
}
