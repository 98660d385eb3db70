// Package postgres provides the GORM-based Unit of Work of the planner.
//
// Repositories handed out before Begin read through the shared connection pool and
// may be used from several goroutines. Repositories handed out after Begin run inside
// the transaction and must only be used by the goroutine that owns the unit of work.
//
// Usage:
//
//	uow := factory.Create()
//	defer uow.Rollback(ctx)
//
//	jobs, err := uow.JobRepository().GetParticipatingInRange(ctx, tenantID, from, to)
//	// ... decide
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	if err := uow.JobRepository().Update(ctx, tenantID, moved); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"time"

	"roundplanner/internal/adapters/out/postgres/clientrepo"
	"roundplanner/internal/adapters/out/postgres/jobrepo"
	"roundplanner/internal/adapters/out/postgres/rotarepo"
	"roundplanner/internal/adapters/out/postgres/weekversionrepo"
	"roundplanner/internal/adapters/out/postgres/workerrepo"
	"roundplanner/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table of the planner for AutoMigrate.
func Models() []any {
	return []any{
		&jobrepo.JobDTO{},
		&clientrepo.ClientDTO{},
		&workerrepo.WorkerDTO{},
		&rotarepo.RotaDTO{},
		&weekversionrepo.WeekVersionDTO{},
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormUnitOfWorkFactory creates a factory. loc is the planning time zone used to map
// stored instants to calendar days.
func NewGormUnitOfWorkFactory(db *gorm.DB, loc *time.Location) *GormUnitOfWorkFactory {
	if loc == nil {
		loc = time.Local
	}
	return &GormUnitOfWorkFactory{db: db, loc: loc}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type, which satisfies every narrower unit of work
// interface the command handlers declare.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db, loc: f.loc}
}

// GormUnitOfWork coordinates one database transaction across the planner repositories.
type GormUnitOfWork struct {
	db  *gorm.DB
	tx  *gorm.DB
	loc *time.Location
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns gorm.ErrInvalidTransaction if no
// transaction is active, which callers deferring Rollback after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// InTransaction reports whether Begin was called without a matching Commit or Rollback.
func (uow *GormUnitOfWork) InTransaction() bool {
	return uow.tx != nil
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow.loc)
}

func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn())
}

func (uow *GormUnitOfWork) WorkerRepository() ports.WorkerRepository {
	return workerrepo.NewGormWorkerRepository(uow.conn())
}

func (uow *GormUnitOfWork) RotaRepository() ports.RotaRepository {
	return rotarepo.NewGormRotaRepository(uow.conn(), uow.loc)
}

func (uow *GormUnitOfWork) WeekVersionRepository() ports.WeekVersionRepository {
	return weekversionrepo.NewGormWeekVersionRepository(uow.conn())
}
