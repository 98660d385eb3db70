package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/errs"
)

// FollowUpStatus names the state of the redistribution that runs after a reset.
type FollowUpStatus string

const (
	FollowUpNotRun    FollowUpStatus = "not_run"
	FollowUpFailed    FollowUpStatus = "failed"
	FollowUpCompleted FollowUpStatus = "completed"
)

// FollowUp is the second phase of a reset. Its failure never undoes the reset.
type FollowUp struct {
	Status FollowUpStatus
	Result services.RedistributionResult
	Err    error
}

// ResetResult reports both phases of a manual reset separately.
type ResetResult struct {
	JobsReset int

	// DaysReset lists the labels of days on which at least one job was cleared.
	DaysReset []string

	// Warnings names jobs whose overrides could not be cleared.
	Warnings []string

	Redistribution FollowUp
}

// ResetCommandHandler clears manual overrides in one batch and then re-plans the week.
//
// The redistribution is forced when the week is the current one, since a reset is an
// explicit user action. A reset that leaves no eligible day (a week already over)
// does not re-plan.
type ResetCommandHandler struct {
	uowFactory    PlanningUoWFactory
	redistributor WeekRedistributor
	now           func() time.Time
	loc           *time.Location
	logger        *slog.Logger
}

func NewResetCommandHandler(
	uowFactory PlanningUoWFactory,
	redistributor WeekRedistributor,
	now func() time.Time,
	loc *time.Location,
	logger *slog.Logger,
) ResetCommandHandler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ResetCommandHandler{
		uowFactory:    uowFactory,
		redistributor: redistributor,
		now:           now,
		loc:           loc,
		logger:        logger.With("component", "manual_reset"),
	}
}

// HandleDay resets one day, whatever its date, and re-plans the week containing it.
func (h ResetCommandHandler) HandleDay(ctx context.Context, command ResetDayCommand) (ResetResult, error) {
	if err := command.Validate(); err != nil {
		return ResetResult{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return ResetResult{}, err
	}

	day := command.Day()
	week := kernel.WeekOf(day)

	result, err := h.reset(ctx, command.Tenant().ID(), week, day, day)
	if err != nil {
		return ResetResult{}, err
	}

	result.Redistribution = h.followUp(ctx, command.Tenant(), week)
	return result, nil
}

// HandleWeek resets the strictly future days of the week and re-plans it.
func (h ResetCommandHandler) HandleWeek(ctx context.Context, command ResetWeekCommand) (ResetResult, error) {
	if err := command.Validate(); err != nil {
		return ResetResult{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return ResetResult{}, err
	}

	week := command.Week()
	tomorrow := kernel.DateOf(h.now().In(h.loc)).AddDays(1)

	from := week.Start()
	if from.Before(tomorrow) {
		from = tomorrow
	}
	if from.After(week.End()) {
		h.logger.InfoContext(ctx, "week has no future days to reset", "week", week.String())
		return ResetResult{Redistribution: FollowUp{Status: FollowUpNotRun}}, nil
	}

	result, err := h.reset(ctx, command.Tenant().ID(), week, from, week.End())
	if err != nil {
		return ResetResult{}, err
	}

	result.Redistribution = h.followUp(ctx, command.Tenant(), week)
	return result, nil
}

// reset clears overrides of participating jobs in [from, to] in one transaction.
func (h ResetCommandHandler) reset(
	ctx context.Context,
	tenantID kernel.UUID,
	week kernel.Week,
	from, to kernel.Date,
) (ResetResult, error) {
	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	version, err := uow.WeekVersionRepository().Get(ctx, tenantID, week)
	if err != nil {
		return ResetResult{}, errs.NewStoreReadError("week version", err)
	}

	var jobs []*job.Job
	if from.Equal(to) {
		jobs, err = uow.JobRepository().GetParticipatingOnDay(ctx, tenantID, from)
	} else {
		jobs, err = uow.JobRepository().GetParticipatingInRange(ctx, tenantID, from, to)
	}
	if err != nil {
		return ResetResult{}, errs.NewStoreReadError("jobs", err)
	}

	var (
		result  ResetResult
		cleared []*job.Job
		touched = make(map[string]bool, kernel.DaysInWeek)
	)
	for _, j := range jobs {
		changed, clearErr := j.ClearOverrides()
		if clearErr != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("job %s was not reset: %v", j.ID(), clearErr))
			continue
		}
		if !changed {
			continue
		}
		cleared = append(cleared, j)
		touched[j.ScheduledDate().String()] = true
	}

	result.JobsReset = len(cleared)
	for _, d := range week.Days() {
		if touched[d.String()] {
			result.DaysReset = append(result.DaysReset, d.Label())
		}
	}

	if len(cleared) == 0 {
		return result, nil
	}

	if err = ctx.Err(); err != nil {
		return ResetResult{}, err
	}
	if err = uow.Begin(ctx); err != nil {
		return ResetResult{}, errs.NewStoreWriteError("begin", err)
	}
	if _, err = uow.WeekVersionRepository().CompareAndBump(ctx, tenantID, week, version); err != nil {
		return ResetResult{}, writeError("bump week version", err)
	}
	repo := uow.JobRepository()
	for _, j := range cleared {
		if err = repo.Update(ctx, tenantID, j); err != nil {
			return ResetResult{}, writeError("clear job overrides", err)
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return ResetResult{}, errs.NewStoreWriteError("commit", err)
	}

	h.logger.InfoContext(ctx, "overrides cleared",
		"week", week.String(),
		"from", from.String(),
		"to", to.String(),
		"jobs", result.JobsReset,
	)
	return result, nil
}

// followUp re-plans the week after a committed reset.
func (h ResetCommandHandler) followUp(ctx context.Context, tc tenant.Context, week kernel.Week) FollowUp {
	force := week.IsCurrent(h.now())

	command, err := NewRedistributeWeekCommand(tc, week.Start(), force)
	if err != nil {
		return FollowUp{Status: FollowUpFailed, Err: err}
	}

	result, err := h.redistributor.Handle(ctx, command)
	if err != nil {
		h.logger.WarnContext(ctx, "redistribution after reset failed; reset is kept",
			"week", week.String(),
			"error", err,
		)
		return FollowUp{Status: FollowUpFailed, Result: result, Err: err}
	}

	return FollowUp{Status: FollowUpCompleted, Result: result}
}
