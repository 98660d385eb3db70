// Package jobrepo persists job aggregates in the jobs table.
package jobrepo

import (
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobDTO is the jobs table row. ScheduledDay holds the local calendar day of
// ScheduledTime as YYYY-MM-DD so day and range queries do not depend on the
// session time zone.
type JobDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_jobs_tenant_day,priority:1"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null"`
	ScheduledTime time.Time       `gorm:"type:timestamptz;not null"`
	ScheduledDay  string          `gorm:"type:varchar(10);not null;index:idx_jobs_tenant_day,priority:2"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	ETA           *string         `gorm:"type:varchar(5)"`
	WorkerID      *uuid.UUID      `gorm:"type:uuid"`
	Version       int             `gorm:"not null;default:0"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(tenantID kernel.UUID, aggregate *job.Job) JobDTO {
	var workerID *uuid.UUID
	if id := aggregate.Worker(); id != nil {
		raw := id.Bytes()
		workerID = &raw
	}

	return JobDTO{
		ID:            aggregate.ID().Bytes(),
		TenantID:      tenantID.Bytes(),
		ClientID:      aggregate.ClientID().Bytes(),
		ScheduledTime: aggregate.ScheduledTime(),
		ScheduledDay:  aggregate.ScheduledDate().String(),
		Price:         aggregate.Price(),
		Status:        aggregate.Status().String(),
		ETA:           aggregate.ETA(),
		WorkerID:      workerID,
		Version:       aggregate.Version(),
	}
}

// toDomain rebuilds the aggregate with its scheduled time expressed in loc.
func toDomain(dto JobDTO, loc *time.Location) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var workerID *kernel.UUID
	if dto.WorkerID != nil {
		wID, workerErr := kernel.UUIDFromBytes((*dto.WorkerID)[:])
		if workerErr != nil {
			return nil, workerErr
		}
		workerID = &wID
	}

	return job.RestoreJob(id, clientID, dto.ScheduledTime.In(loc), dto.Price, status, dto.ETA, workerID, dto.Version)
}
