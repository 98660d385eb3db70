package services

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
)

// Warning texts returned in RedistributionResult.Warnings.
const (
	WarningCurrentWeekSkipped = "week %s is the current operating week; redistribution skipped (use force to override)"
	WarningNoAvailableWorkers = "week %s has no available workers; nothing was moved"
	WarningUnresolvableClient = "job %s references unknown client %s; left in place"
	WarningOverCapacity       = "%s is over capacity by %s (consumed %s of %s)"
	WarningNoFutureDays       = "week %s has no available day after today; nothing was moved"
	WarningJobNotMoved        = "job %s could not be moved to %s: %v; left in place"
)

// Outcome classifies a redistribution for callers that must react differently to each case.
type Outcome int

const (
	// OutcomeNothingToDo: no jobs, nothing moved and nothing to report.
	OutcomeNothingToDo Outcome = iota
	// OutcomeSuccess: jobs were laid out and every day is within capacity.
	OutcomeSuccess
	// OutcomeCompletedWithWarnings: the plan was applied but some warning needs attention,
	// typically residual over-capacity on the last eligible day.
	OutcomeCompletedWithWarnings
	// OutcomeSkippedCurrentWeek: the current-week guard prevented any change.
	OutcomeSkippedCurrentWeek
	// OutcomeNoCapacity: no day of the week has an available worker.
	OutcomeNoCapacity
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNothingToDo:
		return "nothing_to_do"
	case OutcomeSuccess:
		return "success"
	case OutcomeCompletedWithWarnings:
		return "partial_success"
	case OutcomeSkippedCurrentWeek:
		return "skipped_current_week"
	case OutcomeNoCapacity:
		return "no_capacity"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// RedistributionResult is returned to callers; it is never persisted.
type RedistributionResult struct {
	Week         kernel.Week
	MovedJobs    int
	ModifiedDays []string
	Warnings     []string
	Outcome      Outcome
}

// Zeroed returns a copy reporting no moves. Used when the batch could not be committed.
func (r RedistributionResult) Zeroed() RedistributionResult {
	r.MovedJobs = 0
	r.ModifiedDays = nil
	return r
}

// Move is one queued date change.
type Move struct {
	Job  *job.Job
	From kernel.Date
	To   kernel.Date
}

// Plan is the outcome of Redistributor.Plan: the moves to commit, the report,
// and the capacity profile after the moves.
type Plan struct {
	Moves    []Move
	Result   RedistributionResult
	Capacity WeekCapacity
}

// PlanInput is everything the redistributor needs for one week.
type PlanInput struct {
	Week kernel.Week

	// Jobs are the participating jobs dated within the week.
	Jobs []*job.Job

	// RoundOrders maps client id to round order number. Jobs whose client is
	// missing are excluded from packing and reported.
	RoundOrders map[kernel.UUID]int

	Roster worker.Roster
	Rota   rota.Rota

	ForceCurrentWeek bool
}

// Redistributor lays a week's jobs onto days by greedy sequential bin-packing in
// round order.
//
// Algorithm:
//   - the current operating week is left alone unless forced; a forced run only
//     fills the days after today and keeps jobs dated today or earlier in place
//   - eligible days are the days with positive capacity, Monday first
//   - jobs that stay in place (unknown client, today or earlier) still count
//     against the capacity of their day
//   - jobs are sorted by client round order, ties keep input order
//   - a cursor walks the eligible days; a job joins the current day while the running
//     total stays within capacity, otherwise the cursor advances
//   - the last eligible day absorbs whatever does not fit anywhere else
//
// Each day therefore receives a contiguous run of the round, and only the last
// eligible day may exceed its capacity.
//
// Example:
//
//	r := services.NewRedistributor(time.Now)
//	plan := r.Plan(services.PlanInput{Week: week, Jobs: jobs, RoundOrders: orders, Roster: roster, Rota: rt})
//	for _, m := range plan.Moves {
//	    // persist m.Job
//	}
type Redistributor struct {
	now func() time.Time
}

// NewRedistributor creates a redistributor using now as its clock.
func NewRedistributor(now func() time.Time) Redistributor {
	if now == nil {
		now = time.Now
	}
	return Redistributor{now: now}
}

// IsProtected reports whether the current-week guard blocks changes to week.
func (r Redistributor) IsProtected(week kernel.Week, force bool) bool {
	return !force && week.IsCurrent(r.now())
}

// SkippedResult is the result reported when the current-week guard applies.
func SkippedResult(week kernel.Week) RedistributionResult {
	return RedistributionResult{
		Week:     week,
		Warnings: []string{fmt.Sprintf(WarningCurrentWeekSkipped, week)},
		Outcome:  OutcomeSkippedCurrentWeek,
	}
}

// Plan computes the new distribution and applies it to the job aggregates in memory.
// Nothing is persisted; the caller commits Plan.Moves as one batch.
func (r Redistributor) Plan(in PlanInput) Plan {
	if r.IsProtected(in.Week, in.ForceCurrentWeek) {
		return Plan{Result: SkippedResult(in.Week)}
	}

	result := RedistributionResult{Week: in.Week}
	if len(in.Jobs) == 0 {
		return Plan{Result: result}
	}

	var today kernel.Date
	frozen := in.ForceCurrentWeek && in.Week.IsCurrent(r.now())
	if frozen {
		today = kernel.DateOf(r.now().In(in.Week.Start().Location()))
	}

	var (
		packable = make([]rankedJob, 0, len(in.Jobs))
		pinned   = make(map[string]decimal.Decimal, kernel.DaysInWeek)
	)
	for _, j := range in.Jobs {
		if frozen && !j.ScheduledDate().After(today) {
			pin(pinned, j)
			continue
		}
		order, ok := in.RoundOrders[j.ClientID()]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf(WarningUnresolvableClient, j.ID(), j.ClientID()))
			pin(pinned, j)
			continue
		}
		packable = append(packable, rankedJob{job: j, roundOrder: order})
	}

	before := AssembleWeekCapacity(in.Week, in.Jobs, in.Roster, in.Rota)
	eligible := before.EligibleDays()
	if frozen {
		eligible = slices.DeleteFunc(eligible, func(d DayCapacity) bool { return !d.Date.After(today) })
	}
	if len(eligible) == 0 {
		warning := fmt.Sprintf(WarningNoAvailableWorkers, in.Week)
		if frozen && len(before.EligibleDays()) > 0 {
			warning = fmt.Sprintf(WarningNoFutureDays, in.Week)
		}
		result.Warnings = append(result.Warnings, warning)
		result.Outcome = OutcomeNoCapacity
		return Plan{Result: result, Capacity: before}
	}

	if len(packable) == 0 {
		result.Outcome = outcomeOf(result)
		return Plan{Result: result, Capacity: before}
	}

	slices.SortStableFunc(packable, func(a, b rankedJob) int {
		return cmp.Compare(a.roundOrder, b.roundOrder)
	})

	targets := fill(packable, eligible, pinned)

	var (
		moves   []Move
		touched = make(map[string]bool, kernel.DaysInWeek)
	)
	for i, rj := range packable {
		from := rj.job.ScheduledDate()
		moved, err := rj.job.RescheduleTo(targets[i])
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf(WarningJobNotMoved, rj.job.ID(), targets[i], err))
			continue
		}
		if !moved {
			continue
		}
		moves = append(moves, Move{Job: rj.job, From: from, To: targets[i]})
		touched[targets[i].String()] = true
	}

	for _, day := range in.Week.Days() {
		if touched[day.String()] {
			result.ModifiedDays = append(result.ModifiedDays, day.Label())
		}
	}
	result.MovedJobs = len(moves)

	after := AssembleWeekCapacity(in.Week, in.Jobs, in.Roster, in.Rota)
	for _, day := range after.Days {
		if day.IsOverCapacity() {
			result.Warnings = append(result.Warnings, fmt.Sprintf(WarningOverCapacity,
				day.Date.Label(),
				money(day.ConsumedValue.Sub(day.TotalCapacity)),
				money(day.ConsumedValue),
				money(day.TotalCapacity),
			))
		}
	}

	result.Outcome = outcomeOf(result)
	return Plan{Moves: moves, Result: result, Capacity: after}
}

// pin records the price of a job that stays on its day.
func pin(pinned map[string]decimal.Decimal, j *job.Job) {
	day := j.ScheduledDate().String()
	pinned[day] = pinned[day].Add(j.Price())
}

type rankedJob struct {
	job        *job.Job
	roundOrder int
}

// fill walks eligible days with a cursor and returns the target day per job, in
// the order of jobs. Each day starts from the value already pinned to it. A job that
// would overflow the current day moves the cursor on; it keeps moving while the job
// does not fit, so only the last eligible day can end up over capacity.
func fill(jobs []rankedJob, eligible []DayCapacity, pinned map[string]decimal.Decimal) []kernel.Date {
	targets := make([]kernel.Date, len(jobs))
	last := len(eligible) - 1
	cursor := 0
	running := pinned[eligible[0].Date.String()]

	for i, rj := range jobs {
		price := rj.job.Price()
		for cursor < last && running.Add(price).GreaterThan(eligible[cursor].TotalCapacity) {
			cursor++
			running = pinned[eligible[cursor].Date.String()]
		}
		running = running.Add(price)
		targets[i] = eligible[cursor].Date
	}

	return targets
}

func outcomeOf(r RedistributionResult) Outcome {
	switch {
	case len(r.Warnings) > 0:
		return OutcomeCompletedWithWarnings
	case r.MovedJobs > 0:
		return OutcomeSuccess
	default:
		return OutcomeNothingToDo
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
