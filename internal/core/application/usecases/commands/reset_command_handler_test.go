package commands_test

import (
	"errors"
	"testing"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resetFixture struct {
	tc            tenant.Context
	uow           *MockUoW
	factory       *MockPlanningUoWFactory
	jobs          *MockJobRepository
	versions      *MockWeekVersionRepository
	redistributor *MockWeekRedistributor
	handler       commands.ResetCommandHandler
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	f := &resetFixture{
		tc:            newTenant(t),
		uow:           new(MockUoW),
		factory:       new(MockPlanningUoWFactory),
		jobs:          new(MockJobRepository),
		versions:      new(MockWeekVersionRepository),
		redistributor: new(MockWeekRedistributor),
	}
	f.handler = commands.NewResetCommandHandler(f.factory, f.redistributor, clock, time.UTC, discardLogger())

	f.factory.On("Create").Return(f.uow)
	f.uow.On("JobRepository").Return(f.jobs)
	f.uow.On("WeekVersionRepository").Return(f.versions)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	return f
}

func pinned(t *testing.T, j *job.Job) *job.Job {
	t.Helper()
	require.NoError(t, j.SetETA("08:30"))
	require.NoError(t, j.AssignWorker(kernel.NewUUID()))
	return j
}

func TestResetCommandHandler_HandleWeek_CurrentWeekOnlyFutureDays(t *testing.T) {
	ctx := t.Context()
	f := newResetFixture(t)
	w := week(t, "2026-10-12")

	thursday, _ := newJobs(t, date(t, "2026-10-15"), 50, 50)
	sunday, _ := newJobs(t, date(t, "2026-10-18"), 50)
	future := []*job.Job{pinned(t, thursday[0]), thursday[1], pinned(t, sunday[0])}

	var redistributed commands.RedistributeWeekCommand
	mock.InOrder(
		f.versions.On("Get", ctx, f.tc.ID(), w).Return(int64(5), nil).Once(),
		f.jobs.On("GetParticipatingInRange", ctx, f.tc.ID(), date(t, "2026-10-15"), date(t, "2026-10-18")).
			Return(future, nil).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.versions.On("CompareAndBump", ctx, f.tc.ID(), w, int64(5)).Return(int64(6), nil).Once(),
		f.jobs.On("Update", ctx, f.tc.ID(), future[0]).Return(nil).Once(),
		f.jobs.On("Update", ctx, f.tc.ID(), future[2]).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.redistributor.On("Handle", ctx, mock.Anything).
			Run(func(args mock.Arguments) { redistributed = args.Get(1).(commands.RedistributeWeekCommand) }).
			Return(services.RedistributionResult{MovedJobs: 2, Outcome: services.OutcomeSuccess}, nil).Once(),
	)

	cmd, err := commands.NewResetWeekCommand(f.tc, w.Start())
	require.NoError(t, err)
	result, err := f.handler.HandleWeek(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.JobsReset)
	assert.Equal(t, []string{"Thu 2026-10-15", "Sun 2026-10-18"}, result.DaysReset)
	assert.Nil(t, future[0].ETA())
	assert.Nil(t, future[0].Worker())
	assert.Equal(t, commands.FollowUpCompleted, result.Redistribution.Status)
	assert.Equal(t, 2, result.Redistribution.Result.MovedJobs)
	assert.True(t, redistributed.Force(), "reset on the current week forces redistribution")
	assert.True(t, redistributed.Week().Equal(w))

	f.jobs.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestResetCommandHandler_HandleWeek_FutureWeekIsNotForced(t *testing.T) {
	ctx := t.Context()
	f := newResetFixture(t)
	w := week(t, "2026-10-26")

	f.versions.On("Get", ctx, f.tc.ID(), w).Return(int64(0), nil).Once()
	f.jobs.On("GetParticipatingInRange", ctx, f.tc.ID(), w.Start(), w.End()).Return([]*job.Job{}, nil).Once()
	f.redistributor.On("Handle", ctx, mock.MatchedBy(func(c commands.RedistributeWeekCommand) bool {
		return !c.Force()
	})).Return(services.RedistributionResult{Outcome: services.OutcomeNothingToDo}, nil).Once()

	cmd, err := commands.NewResetWeekCommand(f.tc, w.Start())
	require.NoError(t, err)
	result, err := f.handler.HandleWeek(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, result.JobsReset)
	assert.Empty(t, result.DaysReset)
	assert.Equal(t, commands.FollowUpCompleted, result.Redistribution.Status)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	f.redistributor.AssertExpectations(t)
}

func TestResetCommandHandler_HandleWeek_PastWeekDoesNothing(t *testing.T) {
	f := newResetFixture(t)

	cmd, err := commands.NewResetWeekCommand(f.tc, date(t, "2026-10-05"))
	require.NoError(t, err)
	result, err := f.handler.HandleWeek(t.Context(), cmd)

	require.NoError(t, err)
	assert.Zero(t, result.JobsReset)
	assert.Equal(t, commands.FollowUpNotRun, result.Redistribution.Status)
	f.factory.AssertNotCalled(t, "Create")
	f.redistributor.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestResetCommandHandler_HandleDay_RedistributionFailureKeepsReset(t *testing.T) {
	ctx := t.Context()
	f := newResetFixture(t)
	day := date(t, "2026-10-21")
	w := kernel.WeekOf(day)

	jobs, _ := newJobs(t, day, 50)
	pinned(t, jobs[0])
	failure := errs.NewStoreReadError("rota", errors.New("timeout"))

	f.versions.On("Get", ctx, f.tc.ID(), w).Return(int64(1), nil).Once()
	f.jobs.On("GetParticipatingOnDay", ctx, f.tc.ID(), day).Return(jobs, nil).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.versions.On("CompareAndBump", ctx, f.tc.ID(), w, int64(1)).Return(int64(2), nil).Once()
	f.jobs.On("Update", ctx, f.tc.ID(), jobs[0]).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.redistributor.On("Handle", ctx, mock.Anything).Return(services.RedistributionResult{}, failure).Once()

	cmd, err := commands.NewResetDayCommand(f.tc, day)
	require.NoError(t, err)
	result, err := f.handler.HandleDay(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.JobsReset)
	assert.Equal(t, []string{"Wed 2026-10-21"}, result.DaysReset)
	assert.Equal(t, commands.FollowUpFailed, result.Redistribution.Status)
	require.ErrorIs(t, result.Redistribution.Err, errs.ErrStoreRead)
}

func TestResetCommandHandler_HandleDay_JobThatCannotBeResetIsReported(t *testing.T) {
	ctx := t.Context()
	f := newResetFixture(t)
	day := date(t, "2026-10-21")
	w := kernel.WeekOf(day)

	busy, err := job.RestoreJob(kernel.NewUUID(), kernel.NewUUID(), day.At(9, 0), decimal.NewFromInt(50),
		job.InProgress, nil, nil, 0)
	require.NoError(t, err)

	f.versions.On("Get", ctx, f.tc.ID(), w).Return(int64(0), nil).Once()
	f.jobs.On("GetParticipatingOnDay", ctx, f.tc.ID(), day).Return([]*job.Job{busy}, nil).Once()
	f.redistributor.On("Handle", ctx, mock.Anything).
		Return(services.RedistributionResult{Outcome: services.OutcomeNothingToDo}, nil).Once()

	cmd, err := commands.NewResetDayCommand(f.tc, day)
	require.NoError(t, err)
	result, err := f.handler.HandleDay(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, result.JobsReset)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], busy.ID().String())
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestResetCommandHandler_HandleDay_CommitFailure(t *testing.T) {
	ctx := t.Context()
	f := newResetFixture(t)
	day := date(t, "2026-10-21")
	w := kernel.WeekOf(day)

	jobs, _ := newJobs(t, day, 50)
	pinned(t, jobs[0])

	f.versions.On("Get", ctx, f.tc.ID(), w).Return(int64(0), nil).Once()
	f.jobs.On("GetParticipatingOnDay", ctx, f.tc.ID(), day).Return(jobs, nil).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.versions.On("CompareAndBump", ctx, f.tc.ID(), w, int64(0)).Return(int64(1), nil).Once()
	f.jobs.On("Update", ctx, f.tc.ID(), jobs[0]).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(errors.New("disk full")).Once()

	cmd, err := commands.NewResetDayCommand(f.tc, day)
	require.NoError(t, err)
	_, err = f.handler.HandleDay(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStoreWrite)
	f.redistributor.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestResetCommands_RequireTenant(t *testing.T) {
	_, err := commands.NewResetDayCommand(tenant.Context{}, date(t, "2026-10-21"))
	require.ErrorIs(t, err, tenant.ErrNotAuthenticated)

	_, err = commands.NewResetWeekCommand(tenant.Context{}, date(t, "2026-10-19"))
	require.ErrorIs(t, err, tenant.ErrNotAuthenticated)

	_, err = commands.NewResetWeekCommand(newTenant(t), date(t, "2026-10-21"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestResetCommandHandler_HandleWeek_CurrentWeekReplansOnlyFutureDays(t *testing.T) {
	w := week(t, "2026-10-12")
	tuesday, tuesdayClients := newJobs(t, date(t, "2026-10-13"), 50)
	today, todayClients := newJobs(t, date(t, "2026-10-14"), 50)
	require.NoError(t, today[0].SetETA("11:00"))
	friday, fridayClients := newJobs(t, date(t, "2026-10-16"), 50)
	pinned(t, friday[0])
	saturday, saturdayClients := newJobs(t, date(t, "2026-10-17"), 50)

	store := &memStore{
		jobs:     map[kernel.UUID]storedJob{},
		roster:   newRoster(t, 100),
		versions: map[string]int64{},
	}
	for _, group := range [][]*job.Job{tuesday, today, friday, saturday} {
		for _, j := range group {
			store.jobs[j.ID()] = storeJob(j)
		}
	}
	for _, group := range [][]client.Client{tuesdayClients, todayClients, fridayClients, saturdayClients} {
		store.clients = append(store.clients, group...)
	}

	factory := memFactory{store}
	redistributor := commands.NewRedistributeWeekCommandHandler(factory, services.NewRedistributor(clock), 0, discardLogger())
	handler := commands.NewResetCommandHandler(factory, redistributor, clock, time.UTC, discardLogger())

	cmd, err := commands.NewResetWeekCommand(newTenant(t), w.Start())
	require.NoError(t, err)

	result, err := handler.HandleWeek(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.JobsReset)
	assert.Equal(t, commands.FollowUpCompleted, result.Redistribution.Status)
	assert.Equal(t, 2, result.Redistribution.Result.MovedJobs)
	assert.Equal(t, []string{"Thu 2026-10-15"}, result.Redistribution.Result.ModifiedDays)

	stored := func(j *job.Job) storedJob { return store.jobs[j.ID()] }
	assert.Equal(t, "2026-10-13", kernel.DateOf(stored(tuesday[0]).at).String())
	assert.Equal(t, "2026-10-14", kernel.DateOf(stored(today[0]).at).String())
	require.NotNil(t, stored(today[0]).eta)
	assert.Equal(t, "11:00", *stored(today[0]).eta)
	assert.Equal(t, "2026-10-15", kernel.DateOf(stored(friday[0]).at).String())
	assert.Nil(t, stored(friday[0]).eta)
	assert.Nil(t, stored(friday[0]).worker)
	assert.Equal(t, "2026-10-15", kernel.DateOf(stored(saturday[0]).at).String())
	assert.Equal(t, int64(2), store.versions[w.String()])
}
