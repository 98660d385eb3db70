// Package rotarepo persists explicit availability records in the rota table.
// Days without a record are not stored; the domain applies rota.DefaultStatus.
package rotarepo

import (
	"context"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RotaDTO struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day      string    `gorm:"type:varchar(10);primaryKey"`
	WorkerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status   string    `gorm:"type:varchar(8);not null"`
}

func (RotaDTO) TableName() string {
	return "rota"
}

// GormRotaRepository implements ports.RotaRepository using GORM.
type GormRotaRepository struct {
	db  *gorm.DB
	loc *time.Location
}

func NewGormRotaRepository(db *gorm.DB, loc *time.Location) *GormRotaRepository {
	if loc == nil {
		loc = time.Local
	}
	return &GormRotaRepository{db: db, loc: loc}
}

func (r *GormRotaRepository) GetRange(ctx context.Context, tenantID kernel.UUID, from, to kernel.Date) (rota.Rota, error) {
	var dtos []RotaDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND day BETWEEN ? AND ?", tenantID.Bytes(), from.String(), to.String()).
		Find(&dtos).Error
	if err != nil {
		return rota.Rota{}, err
	}

	records := make([]rota.Record, 0, len(dtos))
	for _, dto := range dtos {
		day, dayErr := kernel.ParseDate(dto.Day, r.loc)
		if dayErr != nil {
			return rota.Rota{}, dayErr
		}
		workerID, idErr := kernel.UUIDFromBytes(dto.WorkerID[:])
		if idErr != nil {
			return rota.Rota{}, idErr
		}
		status, statusErr := rota.ParseStatus(dto.Status)
		if statusErr != nil {
			return rota.Rota{}, statusErr
		}
		record, recErr := rota.NewRecord(day, workerID, status)
		if recErr != nil {
			return rota.Rota{}, recErr
		}
		records = append(records, record)
	}

	return rota.New(records...), nil
}

// Upsert inserts the record or overwrites the status of an existing (day, worker) pair.
func (r *GormRotaRepository) Upsert(ctx context.Context, tenantID kernel.UUID, record rota.Record) error {
	dto := RotaDTO{
		TenantID: tenantID.Bytes(),
		Day:      record.Date.String(),
		WorkerID: record.WorkerID.Bytes(),
		Status:   record.Status.String(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "day"}, {Name: "worker_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&dto).Error
}
