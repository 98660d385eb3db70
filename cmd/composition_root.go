package cmd

import (
	"log/slog"
	"time"

	"roundplanner/internal/adapters/in/http"
	"roundplanner/internal/adapters/out/postgres"
	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	loc, err := config.Location()
	if err != nil {
		return CompositionRoot{}, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, loc),
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Location() *time.Location {
	return c.loc
}

func (c *CompositionRoot) planningUoWFactory() commands.PlanningUoWFactory {
	return FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateRedistributeWeekCommandHandler() commands.RedistributeWeekCommandHandler {
	return commands.NewRedistributeWeekCommandHandler(
		c.planningUoWFactory(),
		services.NewRedistributor(c.now),
		c.config.ClientChunk,
		c.logger,
	)
}

func (c *CompositionRoot) CreateResetCommandHandler() commands.ResetCommandHandler {
	return commands.NewResetCommandHandler(
		c.planningUoWFactory(),
		c.CreateRedistributeWeekCommandHandler(),
		c.now,
		c.loc,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTriggerDispatcher() commands.TriggerDispatcher {
	return commands.NewTriggerDispatcher(
		c.CreateRedistributeWeekCommandHandler(),
		c.now,
		c.loc,
		c.config.LookAheadWeeks,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	var f commands.RotaUoWFactory = FuncRotaUoWFactory(func() commands.RotaUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewSetAvailabilityCommandHandler(f, c.CreateTriggerDispatcher())
}

func (c *CompositionRoot) CreateSetDailyCapacityCommandHandler() commands.SetDailyCapacityCommandHandler {
	var f commands.RosterUoWFactory = FuncRosterUoWFactory(func() commands.RosterUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewSetDailyCapacityCommandHandler(f, c.CreateTriggerDispatcher())
}

func (c *CompositionRoot) CreateGetWeekCapacityQueryHandler() queries.GetWeekCapacityQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetWeekCapacityQueryHandler(
		uow.JobRepository(),
		uow.WorkerRepository(),
		uow.RotaRepository(),
		c.now,
	)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(http.Handlers{
		Redistribute:  c.CreateRedistributeWeekCommandHandler(),
		Reset:         c.CreateResetCommandHandler(),
		Dispatch:      c.CreateTriggerDispatcher(),
		Availability:  c.CreateSetAvailabilityCommandHandler(),
		DailyCapacity: c.CreateSetDailyCapacityCommandHandler(),
		WeekCapacity:  c.CreateGetWeekCapacityQueryHandler(),
	}, c.loc, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewCapacitySweepJob(
		c.uowFactory.Create().WorkerRepository(),
		c.CreateTriggerDispatcher(),
		c.config.SweepSpec,
		c.config.SweepTimeout,
		c.logger,
	)
	return jobs.NewJobManager(sweep)
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncRotaUoWFactory func() commands.RotaUoW

func (f FuncRotaUoWFactory) Create() commands.RotaUoW {
	return f()
}

type FuncRosterUoWFactory func() commands.RosterUoW

func (f FuncRosterUoWFactory) Create() commands.RosterUoW {
	return f()
}
