package commands_test

import (
	"context"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, tenantID kernel.UUID, j *job.Job) error {
	args := m.Called(ctx, tenantID, j)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, tenantID kernel.UUID, j *job.Job) error {
	args := m.Called(ctx, tenantID, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetParticipatingInRange(
	ctx context.Context, tenantID kernel.UUID, from, to kernel.Date,
) ([]*job.Job, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetParticipatingOnDay(ctx context.Context, tenantID kernel.UUID, day kernel.Date) ([]*job.Job, error) {
	args := m.Called(ctx, tenantID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, tenantID kernel.UUID, c client.Client) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *MockClientRepository) GetByIDs(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]client.Client, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Client), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Update(ctx context.Context, tenantID kernel.UUID, w worker.Worker) error {
	args := m.Called(ctx, tenantID, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, tenantID kernel.UUID, id kernel.UUID) (worker.Worker, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) GetRoster(ctx context.Context, tenantID kernel.UUID) (worker.Roster, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(worker.Roster), args.Error(1)
}

func (m *MockWorkerRepository) GetTenantsWithRoster(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockRotaRepository struct{ mock.Mock }

func (m *MockRotaRepository) GetRange(ctx context.Context, tenantID kernel.UUID, from, to kernel.Date) (rota.Rota, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(rota.Rota), args.Error(1)
}

func (m *MockRotaRepository) Upsert(ctx context.Context, tenantID kernel.UUID, record rota.Record) error {
	args := m.Called(ctx, tenantID, record)
	return args.Error(0)
}

type MockWeekVersionRepository struct{ mock.Mock }

func (m *MockWeekVersionRepository) Get(ctx context.Context, tenantID kernel.UUID, week kernel.Week) (int64, error) {
	args := m.Called(ctx, tenantID, week)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWeekVersionRepository) CompareAndBump(
	ctx context.Context, tenantID kernel.UUID, week kernel.Week, expected int64,
) (int64, error) {
	args := m.Called(ctx, tenantID, week, expected)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW implements every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) RotaRepository() ports.RotaRepository {
	args := m.Called()
	return args.Get(0).(ports.RotaRepository)
}

func (m *MockUoW) WeekVersionRepository() ports.WeekVersionRepository {
	args := m.Called()
	return args.Get(0).(ports.WeekVersionRepository)
}

type MockPlanningUoWFactory struct{ mock.Mock }

func (m *MockPlanningUoWFactory) Create() commands.PlanningUoW {
	args := m.Called()
	return args.Get(0).(commands.PlanningUoW)
}

type MockRotaUoWFactory struct{ mock.Mock }

func (m *MockRotaUoWFactory) Create() commands.RotaUoW {
	args := m.Called()
	return args.Get(0).(commands.RotaUoW)
}

type MockRosterUoWFactory struct{ mock.Mock }

func (m *MockRosterUoWFactory) Create() commands.RosterUoW {
	args := m.Called()
	return args.Get(0).(commands.RosterUoW)
}

type MockWeekRedistributor struct{ mock.Mock }

func (m *MockWeekRedistributor) Handle(
	ctx context.Context, command commands.RedistributeWeekCommand,
) (services.RedistributionResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(services.RedistributionResult), args.Error(1)
}

type MockTriggerHandler struct{ mock.Mock }

func (m *MockTriggerHandler) Handle(
	ctx context.Context, command commands.DispatchTriggerCommand,
) (commands.AggregateReport, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.AggregateReport), args.Error(1)
}
