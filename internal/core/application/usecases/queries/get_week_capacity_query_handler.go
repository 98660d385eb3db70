package queries

import (
	"context"
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// GetWeekCapacityQueryHandler assembles the week profile from the job, roster and rota
// stores. Any read failure fails the query.
type GetWeekCapacityQueryHandler struct {
	jobs    ports.JobRepository
	workers ports.WorkerRepository
	rotas   ports.RotaRepository
	now     func() time.Time
}

func NewGetWeekCapacityQueryHandler(
	jobs ports.JobRepository,
	workers ports.WorkerRepository,
	rotas ports.RotaRepository,
	now func() time.Time,
) GetWeekCapacityQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetWeekCapacityQueryHandler{jobs: jobs, workers: workers, rotas: rotas, now: now}
}

func (h GetWeekCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetWeekCapacityQuery,
) (GetWeekCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWeekCapacityQueryResponse{}, err
	}
	if err := query.Tenant().Validate(); err != nil {
		return GetWeekCapacityQueryResponse{}, err
	}

	tenantID := query.Tenant().ID()
	week := query.Week()

	var (
		jobs   []*job.Job
		roster worker.Roster
		r      rota.Rota
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if jobs, err = h.jobs.GetParticipatingInRange(gctx, tenantID, week.Start(), week.End()); err != nil {
			return errs.NewStoreReadError("jobs", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if roster, err = h.workers.GetRoster(gctx, tenantID); err != nil {
			return errs.NewStoreReadError("roster", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if r, err = h.rotas.GetRange(gctx, tenantID, week.Start(), week.End()); err != nil {
			return errs.NewStoreReadError("rota", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return GetWeekCapacityQueryResponse{}, err
	}

	profile := services.AssembleWeekCapacity(week, jobs, roster, r)

	response := GetWeekCapacityQueryResponse{
		WeekStart:     week.String(),
		CurrentWeek:   week.IsCurrent(h.now()),
		TotalCapacity: profile.TotalCapacity(),
		Days:          make([]DayCapacityResponse, 0, len(profile.Days)),
	}
	for _, day := range profile.Days {
		response.Days = append(response.Days, DayCapacityResponse{
			Date:             day.Date.String(),
			Label:            day.Date.Label(),
			TotalCapacity:    day.TotalCapacity,
			ConsumedValue:    day.ConsumedValue,
			Available:        day.AvailableCapacity(),
			AvailableWorkers: day.AvailableWorkers,
			Eligible:         day.IsEligible(),
			OverCapacity:     day.IsOverCapacity(),
		})
	}

	return response, nil
}
