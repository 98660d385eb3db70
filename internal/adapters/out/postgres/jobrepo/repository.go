package jobrepo

import (
	"context"
	"errors"
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormJobRepository creates a repository whose calendar days are evaluated in loc.
func NewGormJobRepository(db *gorm.DB, loc *time.Location) *GormJobRepository {
	if loc == nil {
		loc = time.Local
	}
	return &GormJobRepository{db: db, loc: loc}
}

// Add saves a new job.
func (r *GormJobRepository) Add(ctx context.Context, tenantID kernel.UUID, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := r.fromDomain(tenantID, aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the planner-owned fields guarded by the row version.
func (r *GormJobRepository) Update(ctx context.Context, tenantID kernel.UUID, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := r.fromDomain(tenantID, aggregate)
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", dto.ID, dto.TenantID, dto.Version).
		Updates(map[string]any{
			"scheduled_time": dto.ScheduledTime,
			"scheduled_day":  dto.ScheduledDay,
			"eta":            dto.ETA,
			"worker_id":      dto.WorkerID,
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("job version")
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("job", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto, r.loc)
}

// GetParticipatingInRange retrieves pending and scheduled jobs on days within [from, to].
func (r *GormJobRepository) GetParticipatingInRange(
	ctx context.Context,
	tenantID kernel.UUID,
	from, to kernel.Date,
) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ? AND scheduled_day BETWEEN ? AND ?",
			tenantID.Bytes(), participating(), from.String(), to.String()).
		Order("scheduled_time, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainList(dtos)
}

// GetParticipatingOnDay retrieves pending and scheduled jobs on one day.
func (r *GormJobRepository) GetParticipatingOnDay(ctx context.Context, tenantID kernel.UUID, day kernel.Date) ([]*job.Job, error) {
	return r.GetParticipatingInRange(ctx, tenantID, day, day)
}

func (r *GormJobRepository) fromDomain(tenantID kernel.UUID, aggregate *job.Job) JobDTO {
	dto := fromDomain(tenantID, aggregate)
	dto.ScheduledDay = kernel.DateOf(aggregate.ScheduledTime().In(r.loc)).String()
	return dto
}

func (r *GormJobRepository) toDomainList(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto, r.loc)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func participating() []string {
	statuses := job.ParticipatingStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
