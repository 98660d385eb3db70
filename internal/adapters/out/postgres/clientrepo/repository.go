// Package clientrepo reads clients and their round order from the clients table.
package clientrepo

import (
	"context"

	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ClientDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255)"`
	RoundOrder int       `gorm:"not null"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

// GormClientRepository implements ports.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Add(ctx context.Context, tenantID kernel.UUID, c client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dto := ClientDTO{ID: c.ID().Bytes(), TenantID: tenantID.Bytes(), RoundOrder: c.RoundOrder()}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByIDs runs one query per call with the id set bound as a uuid array.
func (r *GormClientRepository) GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]client.Client, error) {
	if len(ids) == 0 {
		return []client.Client{}, nil
	}
	if len(ids) > ports.MaxClientLookup {
		return nil, errs.NewValueIsOutOfRangeError("client ids", len(ids), 1, ports.MaxClientLookup)
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var dtos []ClientDTO
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, tenant_id, name, round_order
		FROM clients
		WHERE tenant_id = ? AND id = ANY(?::uuid[])
		ORDER BY round_order, id
	`, tenantID.Bytes(), pq.Array(raw)).Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	clients := make([]client.Client, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		c, cErr := client.NewClient(id, dto.RoundOrder)
		if cErr != nil {
			return nil, cErr
		}
		clients = append(clients, c)
	}
	return clients, nil
}
