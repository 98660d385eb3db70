// Package workerrepo persists the roster in the workers table.
package workerrepo

import (
	"context"
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/worker"
	"roundplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WorkerDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255);not null"`
	DailyCapacity decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

func toDomain(dto WorkerDTO) (worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return worker.Worker{}, err
	}
	return worker.RestoreWorker(id, dto.Name, dto.DailyCapacity)
}

// GormWorkerRepository implements ports.WorkerRepository using GORM.
type GormWorkerRepository struct {
	db *gorm.DB
}

func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

func (r *GormWorkerRepository) Add(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}
	dto := WorkerDTO{ID: w.ID().Bytes(), TenantID: tenantID.Bytes(), Name: w.Name(), DailyCapacity: w.DailyCapacity()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormWorkerRepository) Update(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error {
	if err := w.Validate(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&WorkerDTO{}).
		Where("id = ? AND tenant_id = ?", w.ID().Bytes(), tenantID.Bytes()).
		Updates(map[string]any{"name": w.Name(), "daily_capacity": w.DailyCapacity()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("worker", w.ID().String())
	}
	return nil
}

func (r *GormWorkerRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (worker.Worker, error) {
	var dto WorkerDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return worker.Worker{}, errs.NewObjectNotFoundError("worker", id.String())
	}
	if err != nil {
		return worker.Worker{}, err
	}
	return toDomain(dto)
}

func (r *GormWorkerRepository) GetRoster(ctx context.Context, tenantID kernel.UUID) (worker.Roster, error) {
	var dtos []WorkerDTO
	if err := r.db.WithContext(ctx).Order("name, id").Find(&dtos, "tenant_id = ?", tenantID.Bytes()).Error; err != nil {
		return nil, err
	}

	roster := make(worker.Roster, 0, len(dtos))
	for _, dto := range dtos {
		w, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		roster = append(roster, w)
	}
	return roster, nil
}

func (r *GormWorkerRepository) GetTenantsWithRoster(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&WorkerDTO{}).Distinct("tenant_id").Order("tenant_id").Pluck("tenant_id", &raw).Error; err != nil {
		return nil, err
	}

	tenants := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		tenantID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenantID)
	}
	return tenants, nil
}
