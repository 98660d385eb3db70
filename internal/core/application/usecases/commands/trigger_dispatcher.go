package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/services"
)

// DefaultLookAheadWeeks is how many weeks after the current one a new job can affect.
const DefaultLookAheadWeeks = 8

// WeekReport is the outcome of one week within a dispatch.
type WeekReport struct {
	Week   kernel.Week
	Result services.RedistributionResult
	Err    error
}

// AggregateReport collects the per-week outcomes of one trigger.
type AggregateReport struct {
	Kind  TriggerKind
	Weeks []WeekReport
}

// MovedJobs sums the moves of every week.
func (r AggregateReport) MovedJobs() int {
	n := 0
	for _, w := range r.Weeks {
		n += w.Result.MovedJobs
	}
	return n
}

// Failed counts weeks that ended with an error.
func (r AggregateReport) Failed() int {
	n := 0
	for _, w := range r.Weeks {
		if w.Err != nil {
			n++
		}
	}
	return n
}

// Warnings flattens the warnings of every week, with failures reported as warnings.
func (r AggregateReport) Warnings() []string {
	var out []string
	for _, w := range r.Weeks {
		if w.Err != nil {
			out = append(out, fmt.Sprintf("week %s failed: %v", w.Week, w.Err))
			continue
		}
		out = append(out, w.Result.Warnings...)
	}
	return out
}

// TriggerHandler is what rota and roster writes call after committing.
type TriggerHandler interface {
	Handle(ctx context.Context, command DispatchTriggerCommand) (AggregateReport, error)
}

// TriggerDispatcher turns a change into the set of weeks it affects and redistributes
// each one without force, so the current-week guard always applies.
//
// A failing week is recorded and the remaining weeks still run. Only an invalid command
// or a cancelled context stops the loop early.
type TriggerDispatcher struct {
	redistributor WeekRedistributor
	now           func() time.Time
	loc           *time.Location
	lookAhead     int
	logger        *slog.Logger
}

func NewTriggerDispatcher(
	redistributor WeekRedistributor,
	now func() time.Time,
	loc *time.Location,
	lookAhead int,
	logger *slog.Logger,
) TriggerDispatcher {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	if lookAhead <= 0 {
		lookAhead = DefaultLookAheadWeeks
	}
	if logger == nil {
		logger = slog.Default()
	}
	return TriggerDispatcher{
		redistributor: redistributor,
		now:           now,
		loc:           loc,
		lookAhead:     lookAhead,
		logger:        logger.With("component", "trigger_dispatcher"),
	}
}

func (d TriggerDispatcher) Handle(ctx context.Context, command DispatchTriggerCommand) (AggregateReport, error) {
	if err := command.Validate(); err != nil {
		return AggregateReport{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return AggregateReport{}, err
	}

	report := AggregateReport{Kind: command.Kind()}
	weeks := d.AffectedWeeks(command.Kind(), command.Dates())

	for _, week := range weeks {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		cmd, err := NewRedistributeWeekCommand(command.Tenant(), week.Start(), false)
		if err != nil {
			report.Weeks = append(report.Weeks, WeekReport{Week: week, Err: err})
			continue
		}

		result, err := d.redistributor.Handle(ctx, cmd)
		if err != nil {
			d.logger.WarnContext(ctx, "week redistribution failed",
				"kind", string(command.Kind()),
				"week", week.String(),
				"error", err,
			)
		}
		report.Weeks = append(report.Weeks, WeekReport{Week: week, Result: result, Err: err})
	}

	d.logger.InfoContext(ctx, "trigger dispatched",
		"kind", string(command.Kind()),
		"weeks", len(report.Weeks),
		"moved", report.MovedJobs(),
		"failed", report.Failed(),
	)
	return report, nil
}

// AffectedWeeks resolves the weeks a trigger covers, in chronological order without
// duplicates.
func (d TriggerDispatcher) AffectedWeeks(kind TriggerKind, dates []kernel.Date) []kernel.Week {
	if !kind.needsDates() {
		next := kernel.CurrentWeek(d.now(), d.loc).Next()
		weeks := make([]kernel.Week, d.lookAhead)
		for i := range weeks {
			weeks[i] = next.AddWeeks(i)
		}
		return weeks
	}

	var weeks []kernel.Week
	for _, date := range dates {
		week := kernel.WeekOf(date)
		if !slices.ContainsFunc(weeks, week.Equal) {
			weeks = append(weeks, week)
		}
	}
	slices.SortFunc(weeks, func(a, b kernel.Week) int {
		switch {
		case a.Start().Before(b.Start()):
			return -1
		case a.Start().After(b.Start()):
			return 1
		default:
			return 0
		}
	})
	return weeks
}
