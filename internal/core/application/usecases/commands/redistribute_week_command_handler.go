package commands

import (
	"context"
	"log/slog"
	"slices"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// WeekRedistributor is the entry point reset and dispatch use to re-plan a week.
type WeekRedistributor interface {
	Handle(ctx context.Context, command RedistributeWeekCommand) (services.RedistributionResult, error)
}

// RedistributeWeekCommandHandler reads a week, plans it with services.Redistributor and
// commits every move in one transaction.
//
// Reads happen outside the transaction: the week version, then roster, rota and jobs
// concurrently, then clients in chunks. The commit transaction compares and bumps the
// week version and updates each moved job against its row version, so a concurrent
// writer makes the whole batch fail with ErrConcurrentModification.
//
// Example:
//
//	handler := NewRedistributeWeekCommandHandler(uowFactory, services.NewRedistributor(time.Now), 30, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrStoreWrite):
//	    // nothing was moved
//	case err != nil:
//	    return err
//	}
//	fmt.Println(result.Outcome, result.MovedJobs)
type RedistributeWeekCommandHandler struct {
	uowFactory    PlanningUoWFactory
	redistributor services.Redistributor
	clientChunk   int
	logger        *slog.Logger
}

// NewRedistributeWeekCommandHandler creates the handler. clientChunk is the number of ids
// per client lookup; values outside 1..ports.MaxClientLookup fall back to the maximum.
func NewRedistributeWeekCommandHandler(
	uowFactory PlanningUoWFactory,
	redistributor services.Redistributor,
	clientChunk int,
	logger *slog.Logger,
) RedistributeWeekCommandHandler {
	if clientChunk <= 0 || clientChunk > ports.MaxClientLookup {
		clientChunk = ports.MaxClientLookup
	}
	if logger == nil {
		logger = slog.Default()
	}
	return RedistributeWeekCommandHandler{
		uowFactory:    uowFactory,
		redistributor: redistributor,
		clientChunk:   clientChunk,
		logger:        logger.With("component", "redistribute_week"),
	}
}

// Handle runs one redistribution. Business outcomes are reported in the result; only
// store and validation failures are errors. When the commit fails the returned
// result reports zero moves.
func (h RedistributeWeekCommandHandler) Handle(
	ctx context.Context,
	command RedistributeWeekCommand,
) (services.RedistributionResult, error) {
	if err := command.Validate(); err != nil {
		return services.RedistributionResult{}, err
	}
	if err := command.Tenant().Validate(); err != nil {
		return services.RedistributionResult{}, err
	}

	week := command.Week()
	if h.redistributor.IsProtected(week, command.Force()) {
		h.logger.InfoContext(ctx, "current week skipped", "week", week.String())
		return services.SkippedResult(week), nil
	}

	tenantID := command.Tenant().ID()
	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	versions := uow.WeekVersionRepository()
	version, err := versions.Get(ctx, tenantID, week)
	if err != nil {
		return services.RedistributionResult{}, errs.NewStoreReadError("week version", err)
	}

	snapshot, err := h.read(ctx, uow, tenantID, week)
	if err != nil {
		return services.RedistributionResult{}, err
	}

	plan := h.redistributor.Plan(services.PlanInput{
		Week:             week,
		Jobs:             snapshot.jobs,
		RoundOrders:      snapshot.roundOrders,
		Roster:           snapshot.roster,
		Rota:             snapshot.rota,
		ForceCurrentWeek: command.Force(),
	})

	if len(plan.Moves) == 0 {
		h.logger.InfoContext(ctx, "week planned without moves",
			"week", week.String(),
			"jobs", len(snapshot.jobs),
			"outcome", plan.Result.Outcome.String(),
			"warnings", len(plan.Result.Warnings),
		)
		return plan.Result, nil
	}

	if err = ctx.Err(); err != nil {
		return plan.Result.Zeroed(), err
	}

	if err = uow.Begin(ctx); err != nil {
		return plan.Result.Zeroed(), errs.NewStoreWriteError("begin", err)
	}

	if _, err = uow.WeekVersionRepository().CompareAndBump(ctx, tenantID, week, version); err != nil {
		return plan.Result.Zeroed(), writeError("bump week version", err)
	}

	jobs := uow.JobRepository()
	for _, move := range plan.Moves {
		if err = jobs.Update(ctx, tenantID, move.Job); err != nil {
			return plan.Result.Zeroed(), writeError("update job", err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "redistribution batch failed", "week", week.String(), "error", err)
		return plan.Result.Zeroed(), errs.NewStoreWriteError("commit", err)
	}

	h.logger.InfoContext(ctx, "week redistributed",
		"week", week.String(),
		"moved", plan.Result.MovedJobs,
		"days", plan.Result.ModifiedDays,
		"warnings", len(plan.Result.Warnings),
	)
	return plan.Result, nil
}

type weekSnapshot struct {
	jobs        []*job.Job
	roundOrders map[kernel.UUID]int
	roster      worker.Roster
	rota        rota.Rota
}

func (h RedistributeWeekCommandHandler) read(
	ctx context.Context,
	uow PlanningUoW,
	tenantID kernel.UUID,
	week kernel.Week,
) (weekSnapshot, error) {
	var snapshot weekSnapshot

	workers := uow.WorkerRepository()
	rotas := uow.RotaRepository()
	jobs := uow.JobRepository()
	clients := uow.ClientRepository()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		roster, err := workers.GetRoster(gctx, tenantID)
		if err != nil {
			return errs.NewStoreReadError("roster", err)
		}
		snapshot.roster = roster
		return nil
	})
	g.Go(func() error {
		r, err := rotas.GetRange(gctx, tenantID, week.Start(), week.End())
		if err != nil {
			return errs.NewStoreReadError("rota", err)
		}
		snapshot.rota = r
		return nil
	})
	g.Go(func() error {
		list, err := jobs.GetParticipatingInRange(gctx, tenantID, week.Start(), week.End())
		if err != nil {
			return errs.NewStoreReadError("jobs", err)
		}
		snapshot.jobs = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return weekSnapshot{}, err
	}

	orders, err := h.roundOrders(ctx, clients, tenantID, snapshot.jobs)
	if err != nil {
		return weekSnapshot{}, err
	}
	snapshot.roundOrders = orders

	return snapshot, nil
}

// roundOrders resolves the round order of every distinct client referenced by jobs.
func (h RedistributeWeekCommandHandler) roundOrders(
	ctx context.Context,
	repo ports.ClientRepository,
	tenantID kernel.UUID,
	jobs []*job.Job,
) (map[kernel.UUID]int, error) {
	seen := make(map[kernel.UUID]bool, len(jobs))
	ids := make([]kernel.UUID, 0, len(jobs))
	for _, j := range jobs {
		if !seen[j.ClientID()] {
			seen[j.ClientID()] = true
			ids = append(ids, j.ClientID())
		}
	}

	orders := make(map[kernel.UUID]int, len(ids))
	for chunk := range slices.Chunk(ids, h.clientChunk) {
		found, err := repo.GetByIDs(ctx, tenantID, chunk)
		if err != nil {
			return nil, errs.NewStoreReadError("clients", err)
		}
		for _, c := range found {
			orders[c.ID()] = c.RoundOrder()
		}
	}

	return orders, nil
}
