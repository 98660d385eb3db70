package jobs

import (
	"context"
	"log/slog"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec runs the sweep every night at 02:30.
const DefaultSweepSpec = "0 30 2 * * *"

// TenantLister lists the tenants the sweep covers.
type TenantLister interface {
	GetTenantsWithRoster(ctx context.Context) ([]kernel.UUID, error)
}

// CapacitySweepJob periodically re-plans the look-ahead window of every tenant with a roster.
// Each tenant runs through the dispatcher as a scheduled_sweep trigger, so the
// current-week guard still applies.
type CapacitySweepJob struct {
	tenants    TenantLister
	dispatcher commands.TriggerHandler
	spec       string
	timeout    time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCapacitySweepJob creates the job. spec is a six-field cron expression; an empty one
// falls back to DefaultSweepSpec.
func NewCapacitySweepJob(
	tenants TenantLister,
	dispatcher commands.TriggerHandler,
	spec string,
	timeout time.Duration,
	logger *slog.Logger,
) *CapacitySweepJob {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CapacitySweepJob{
		tenants:    tenants,
		dispatcher: dispatcher,
		spec:       spec,
		timeout:    timeout,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "capacity_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *CapacitySweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Capacity sweep job started", "spec", j.spec)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *CapacitySweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Capacity sweep job stopped")
}

// RunOnce sweeps every tenant and returns how many tenants completed without failures.
// A failing tenant is logged and does not stop the others.
func (j *CapacitySweepJob) RunOnce(ctx context.Context) int {
	ids, err := j.tenants.GetTenantsWithRoster(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Capacity sweep could not list tenants", "error", err)
		return 0
	}

	ok := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			j.logger.WarnContext(ctx, "Capacity sweep interrupted", "error", ctx.Err())
			break
		}
		if j.sweepTenant(ctx, id) {
			ok++
		}
	}
	return ok
}

func (j *CapacitySweepJob) sweepTenant(ctx context.Context, id kernel.UUID) bool {
	logger := j.logger.With("tenant_id", id.String())

	tc, err := tenant.New(id)
	if err != nil {
		logger.ErrorContext(ctx, "Capacity sweep skipped tenant", "error", err)
		return false
	}
	cmd, err := commands.NewDispatchTriggerCommand(tc, commands.TriggerScheduledSweep)
	if err != nil {
		logger.ErrorContext(ctx, "Capacity sweep skipped tenant", "error", err)
		return false
	}

	report, err := j.dispatcher.Handle(ctx, cmd)
	if err != nil {
		logger.ErrorContext(ctx, "Capacity sweep failed", "error", err)
		return false
	}
	if report.Failed() > 0 {
		logger.WarnContext(ctx, "Capacity sweep finished with failed weeks",
			"failed_weeks", report.Failed(),
			"moved_jobs", report.MovedJobs(),
		)
		return false
	}

	logger.InfoContext(ctx, "Capacity sweep finished", "weeks", len(report.Weeks), "moved_jobs", report.MovedJobs())
	return true
}
