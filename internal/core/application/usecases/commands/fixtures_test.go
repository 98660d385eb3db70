package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// now is Wednesday 2026-10-14; the current week starts on Monday 2026-10-12.
var now = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(t *testing.T, s string) kernel.Date {
	t.Helper()
	d, err := kernel.ParseDate(s, time.UTC)
	require.NoError(t, err)
	return d
}

func week(t *testing.T, start string) kernel.Week {
	t.Helper()
	w, err := kernel.NewWeek(date(t, start))
	require.NoError(t, err)
	return w
}

func newTenant(t *testing.T) tenant.Context {
	t.Helper()
	tc, err := tenant.New(kernel.NewUUID())
	require.NoError(t, err)
	return tc
}

func newRoster(t *testing.T, capacities ...int64) worker.Roster {
	t.Helper()
	roster := make(worker.Roster, 0, len(capacities))
	for _, c := range capacities {
		w, err := worker.NewWorker(kernel.NewUUID(), "worker", decimal.NewFromInt(c))
		require.NoError(t, err)
		roster = append(roster, w)
	}
	return roster
}

// newJobs creates one pending job per price on day, each with its own client, and the
// matching clients with round orders 1..n.
func newJobs(t *testing.T, day kernel.Date, prices ...int64) ([]*job.Job, []client.Client) {
	t.Helper()
	jobs := make([]*job.Job, 0, len(prices))
	clients := make([]client.Client, 0, len(prices))
	for i, p := range prices {
		c, err := client.NewClient(kernel.NewUUID(), i+1)
		require.NoError(t, err)
		j, err := job.NewJob(kernel.NewUUID(), c.ID(), day.At(9, 0), decimal.NewFromInt(p), job.Scheduled)
		require.NoError(t, err)
		jobs = append(jobs, j)
		clients = append(clients, c)
	}
	return jobs, clients
}
