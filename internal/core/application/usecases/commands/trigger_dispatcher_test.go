package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func weekStarts(weeks []kernel.Week) []string {
	out := make([]string, len(weeks))
	for i, w := range weeks {
		out[i] = w.String()
	}
	return out
}

func TestTriggerDispatcher_AffectedWeeks(t *testing.T) {
	dispatcher := commands.NewTriggerDispatcher(new(MockWeekRedistributor), clock, time.UTC, 0, discardLogger())

	t.Run("job added covers the look-ahead window after the current week", func(t *testing.T) {
		weeks := dispatcher.AffectedWeeks(commands.TriggerJobAdded, nil)

		require.Len(t, weeks, commands.DefaultLookAheadWeeks)
		assert.Equal(t, "2026-10-19", weeks[0].String())
		assert.Equal(t, "2026-12-07", weeks[7].String())
	})

	t.Run("scheduled sweep uses the same window", func(t *testing.T) {
		assert.Equal(t,
			weekStarts(dispatcher.AffectedWeeks(commands.TriggerJobAdded, nil)),
			weekStarts(dispatcher.AffectedWeeks(commands.TriggerScheduledSweep, nil)),
		)
	})

	t.Run("availability change covers the weeks of its dates once each", func(t *testing.T) {
		weeks := dispatcher.AffectedWeeks(commands.TriggerAvailabilityChanged, []kernel.Date{
			date(t, "2026-11-04"), date(t, "2026-10-14"), date(t, "2026-11-01"), date(t, "2026-10-15"),
		})

		assert.Equal(t, []string{"2026-10-12", "2026-10-26", "2026-11-02"}, weekStarts(weeks))
	})
}

func TestTriggerDispatcher_Handle_IsolatesFailures(t *testing.T) {
	ctx := t.Context()
	redistributor := new(MockWeekRedistributor)
	dispatcher := commands.NewTriggerDispatcher(redistributor, clock, time.UTC, 3, discardLogger())
	tc := newTenant(t)

	forWeek := func(start string) any {
		return mock.MatchedBy(func(c commands.RedistributeWeekCommand) bool {
			return c.Week().String() == start && !c.Force()
		})
	}
	mock.InOrder(
		redistributor.On("Handle", ctx, forWeek("2026-10-19")).
			Return(services.RedistributionResult{MovedJobs: 3, Warnings: []string{"Fri 2026-10-23 is over capacity"}}, nil).Once(),
		redistributor.On("Handle", ctx, forWeek("2026-10-26")).
			Return(services.RedistributionResult{}, errs.NewStoreReadError("jobs", errors.New("timeout"))).Once(),
		redistributor.On("Handle", ctx, forWeek("2026-11-02")).
			Return(services.RedistributionResult{MovedJobs: 2}, nil).Once(),
	)

	cmd, err := commands.NewDispatchTriggerCommand(tc, commands.TriggerJobAdded)
	require.NoError(t, err)
	report, err := dispatcher.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, report.Weeks, 3)
	assert.Equal(t, commands.TriggerJobAdded, report.Kind)
	assert.Equal(t, 5, report.MovedJobs())
	assert.Equal(t, 1, report.Failed())
	require.ErrorIs(t, report.Weeks[1].Err, errs.ErrStoreRead)

	warnings := report.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[1], "week 2026-10-26 failed")
	redistributor.AssertExpectations(t)
}

func TestTriggerDispatcher_Handle_CurrentWeekIsNeverForced(t *testing.T) {
	ctx := t.Context()
	redistributor := new(MockWeekRedistributor)
	dispatcher := commands.NewTriggerDispatcher(redistributor, clock, time.UTC, 0, discardLogger())

	redistributor.On("Handle", ctx, mock.MatchedBy(func(c commands.RedistributeWeekCommand) bool {
		return c.Week().String() == "2026-10-12" && !c.Force()
	})).Return(services.SkippedResult(week(t, "2026-10-12")), nil).Once()

	cmd, err := commands.NewDispatchTriggerCommand(newTenant(t), commands.TriggerAvailabilityChanged, date(t, "2026-10-16"))
	require.NoError(t, err)
	report, err := dispatcher.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, report.Weeks, 1)
	assert.Equal(t, services.OutcomeSkippedCurrentWeek, report.Weeks[0].Result.Outcome)
}

func TestTriggerDispatcher_Handle_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	redistributor := new(MockWeekRedistributor)
	dispatcher := commands.NewTriggerDispatcher(redistributor, clock, time.UTC, 4, discardLogger())

	redistributor.On("Handle", ctx, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(services.RedistributionResult{}, nil).Once()

	cmd, err := commands.NewDispatchTriggerCommand(newTenant(t), commands.TriggerScheduledSweep)
	require.NoError(t, err)
	report, err := dispatcher.Handle(ctx, cmd)

	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Weeks, 1)
	redistributor.AssertNumberOfCalls(t, "Handle", 1)
}

func TestNewDispatchTriggerCommand(t *testing.T) {
	tc := newTenant(t)

	_, err := commands.NewDispatchTriggerCommand(tenant.Context{}, commands.TriggerJobAdded)
	require.ErrorIs(t, err, tenant.ErrNotAuthenticated)

	_, err = commands.NewDispatchTriggerCommand(tc, commands.TriggerKind("job_removed"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewDispatchTriggerCommand(tc, commands.TriggerDailyCapacityChanged)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	kind, err := commands.ParseTriggerKind("availability_changed")
	require.NoError(t, err)
	assert.Equal(t, commands.TriggerAvailabilityChanged, kind)

	err = commands.DispatchTriggerCommand{}.Validate()
	require.ErrorIs(t, err, commands.ErrDispatchTriggerCommandIsNotConstructed)
}
