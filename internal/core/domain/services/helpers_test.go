package services_test

import (
	"testing"
	"time"

	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// now is Wednesday of the week starting 2026-10-12; the week of 2026-10-19 is in the future.
var now = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func futureWeek(t *testing.T) kernel.Week {
	t.Helper()
	w, err := kernel.NewWeek(kernel.NewDate(2026, time.October, 19, time.UTC))
	require.NoError(t, err)
	return w
}

func currentWeek(t *testing.T) kernel.Week {
	t.Helper()
	w, err := kernel.NewWeek(kernel.NewDate(2026, time.October, 12, time.UTC))
	require.NoError(t, err)
	return w
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

// offOn marks every worker of the roster off on the given days.
func offOn(t *testing.T, roster worker.Roster, days ...kernel.Date) rota.Rota {
	t.Helper()
	var records []rota.Record
	for _, d := range days {
		for _, w := range roster {
			rec, err := rota.NewRecord(d, w.ID(), rota.Off)
			require.NoError(t, err)
			records = append(records, rec)
		}
	}
	return rota.New(records...)
}

type round struct {
	jobs   []*job.Job
	orders map[kernel.UUID]int
}

// newRound creates one job per price on day, with client round orders 1..n in input order.
func newRound(t *testing.T, day kernel.Date, prices ...int64) round {
	t.Helper()
	r := round{orders: make(map[kernel.UUID]int, len(prices))}
	for i, p := range prices {
		clientID := kernel.NewUUID()
		j, err := job.NewJob(kernel.NewUUID(), clientID, day.At(9, 0), decimal.NewFromInt(p), job.Pending)
		require.NoError(t, err)
		r.jobs = append(r.jobs, j)
		r.orders[clientID] = i + 1
	}
	return r
}

func datesOf(jobs []*job.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ScheduledDate().String()
	}
	return out
}
