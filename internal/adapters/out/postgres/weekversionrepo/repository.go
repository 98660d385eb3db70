// Package weekversionrepo keeps the optimistic lock token of each planned week.
package weekversionrepo

import (
	"context"
	"errors"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeekVersionDTO struct {
	TenantID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	WeekStart string    `gorm:"type:varchar(10);primaryKey"`
	Version   int64     `gorm:"not null"`
}

func (WeekVersionDTO) TableName() string {
	return "week_versions"
}

// GormWeekVersionRepository implements ports.WeekVersionRepository using GORM.
//
// CompareAndBump relies on row locks: a second transaction bumping the same week waits
// for the first one, then finds the version changed and fails.
type GormWeekVersionRepository struct {
	db *gorm.DB
}

func NewGormWeekVersionRepository(db *gorm.DB) *GormWeekVersionRepository {
	return &GormWeekVersionRepository{db: db}
}

func (r *GormWeekVersionRepository) Get(ctx context.Context, tenantID kernel.UUID, week kernel.Week) (int64, error) {
	var dto WeekVersionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND week_start = ?", tenantID.Bytes(), week.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dto.Version, nil
}

func (r *GormWeekVersionRepository) CompareAndBump(
	ctx context.Context,
	tenantID kernel.UUID,
	week kernel.Week,
	expected int64,
) (int64, error) {
	var result *gorm.DB
	if expected == 0 {
		result = r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&WeekVersionDTO{TenantID: tenantID.Bytes(), WeekStart: week.String(), Version: 1})
	} else {
		result = r.db.WithContext(ctx).Model(&WeekVersionDTO{}).
			Where("tenant_id = ? AND week_start = ? AND version = ?", tenantID.Bytes(), week.String(), expected).
			Update("version", gorm.Expr("version + 1"))
	}
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewVersionIsInvalidErrorWithCause(
			"week version",
			errors.New("week "+week.String()+" changed since it was read"),
		)
	}
	return expected + 1, nil
}
