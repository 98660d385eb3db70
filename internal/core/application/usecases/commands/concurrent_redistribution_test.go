package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/client"
	"roundplanner/internal/core/domain/model/job"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"
	"roundplanner/internal/core/domain/model/worker"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a tiny transactional store. A transaction holds txMu from Begin to
// Commit or Rollback, the way a row lock on the week version serializes writers.
type memStore struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	jobs     map[kernel.UUID]storedJob
	clients  []client.Client
	roster   worker.Roster
	versions map[string]int64

	// readBarrier, when set, makes every planner read the week version before anyone writes.
	readBarrier *sync.WaitGroup
}

type storedJob struct {
	id, clientID kernel.UUID
	at           time.Time
	price        decimal.Decimal
	eta          *string
	worker       *kernel.UUID
	version      int
}

func storeJob(j *job.Job) storedJob {
	return storedJob{
		id: j.ID(), clientID: j.ClientID(), at: j.ScheduledTime(), price: j.Price(),
		eta: j.ETA(), worker: j.Worker(), version: j.Version(),
	}
}

func (s *memStore) restore(sj storedJob) *job.Job {
	j, err := job.RestoreJob(sj.id, sj.clientID, sj.at, sj.price, job.Scheduled, sj.eta, sj.worker, sj.version)
	if err != nil {
		panic(err)
	}
	return j
}

type memUoW struct {
	store  *memStore
	inTx   bool
	staged []func()
}

func (u *memUoW) Begin(context.Context) error {
	u.store.txMu.Lock()
	u.inTx = true
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	for _, apply := range u.staged {
		apply()
	}
	u.store.mu.Unlock()
	u.staged = nil
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	if !u.inTx {
		return nil
	}
	u.staged = nil
	u.inTx = false
	u.store.txMu.Unlock()
	return nil
}

func (u *memUoW) JobRepository() ports.JobRepository                 { return memJobs{u} }
func (u *memUoW) ClientRepository() ports.ClientRepository           { return memClients{u.store} }
func (u *memUoW) WorkerRepository() ports.WorkerRepository           { return memWorkers{u.store} }
func (u *memUoW) RotaRepository() ports.RotaRepository               { return memRota{} }
func (u *memUoW) WeekVersionRepository() ports.WeekVersionRepository { return memVersions{u} }

type memJobs struct{ uow *memUoW }

func (r memJobs) Add(context.Context, kernel.UUID, *job.Job) error { return nil }

func (r memJobs) Get(context.Context, kernel.UUID, kernel.UUID) (*job.Job, error) {
	return nil, errs.NewObjectNotFoundError("job", nil)
}

func (r memJobs) GetParticipatingInRange(_ context.Context, _ kernel.UUID, from, to kernel.Date) ([]*job.Job, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	var out []*job.Job
	for _, sj := range r.uow.store.jobs {
		d := kernel.DateOf(sj.at)
		if !d.Before(from) && !d.After(to) {
			out = append(out, r.uow.store.restore(sj))
		}
	}
	return out, nil
}

func (r memJobs) GetParticipatingOnDay(ctx context.Context, tenantID kernel.UUID, day kernel.Date) ([]*job.Job, error) {
	return r.GetParticipatingInRange(ctx, tenantID, day, day)
}

func (r memJobs) Update(_ context.Context, _ kernel.UUID, j *job.Job) error {
	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.jobs[j.ID()].version != j.Version() {
		return errs.NewVersionIsInvalidError("job version")
	}
	r.uow.staged = append(r.uow.staged, func() {
		sj := store.jobs[j.ID()]
		sj.at = j.ScheduledTime()
		sj.eta = j.ETA()
		sj.worker = j.Worker()
		sj.version++
		store.jobs[j.ID()] = sj
	})
	return nil
}

type memClients struct{ store *memStore }

func (r memClients) Add(context.Context, kernel.UUID, client.Client) error { return nil }

func (r memClients) GetByIDs(context.Context, kernel.UUID, []kernel.UUID) ([]client.Client, error) {
	return r.store.clients, nil
}

type memWorkers struct{ store *memStore }

func (r memWorkers) Add(context.Context, kernel.UUID, worker.Worker) error    { return nil }
func (r memWorkers) Update(context.Context, kernel.UUID, worker.Worker) error { return nil }

func (r memWorkers) Get(context.Context, kernel.UUID, kernel.UUID) (worker.Worker, error) {
	return worker.Worker{}, errs.NewObjectNotFoundError("worker", nil)
}

func (r memWorkers) GetRoster(context.Context, kernel.UUID) (worker.Roster, error) {
	return r.store.roster, nil
}

func (r memWorkers) GetTenantsWithRoster(context.Context) ([]kernel.UUID, error) { return nil, nil }

type memRota struct{}

func (memRota) GetRange(context.Context, kernel.UUID, kernel.Date, kernel.Date) (rota.Rota, error) {
	return rota.New(), nil
}

func (memRota) Upsert(context.Context, kernel.UUID, rota.Record) error { return nil }

type memVersions struct{ uow *memUoW }

func (r memVersions) Get(_ context.Context, _ kernel.UUID, week kernel.Week) (int64, error) {
	store := r.uow.store
	store.mu.Lock()
	v := store.versions[week.String()]
	store.mu.Unlock()

	if store.readBarrier != nil {
		store.readBarrier.Done()
		store.readBarrier.Wait()
	}
	return v, nil
}

func (r memVersions) CompareAndBump(_ context.Context, _ kernel.UUID, week kernel.Week, expected int64) (int64, error) {
	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.versions[week.String()] != expected {
		return 0, errs.NewVersionIsInvalidError("week version")
	}
	r.uow.staged = append(r.uow.staged, func() {
		store.versions[week.String()] = expected + 1
	})
	return expected + 1, nil
}

type memFactory struct{ store *memStore }

func (f memFactory) Create() commands.PlanningUoW { return &memUoW{store: f.store} }

func TestRedistributeWeekCommandHandler_ConcurrentInvocationsAreDetected(t *testing.T) {
	w := week(t, "2026-10-19")
	jobs, clients := newJobs(t, date(t, "2026-10-25"), 50, 50, 50, 50)

	store := &memStore{
		jobs:        make(map[kernel.UUID]storedJob, len(jobs)),
		clients:     clients,
		roster:      newRoster(t, 100),
		versions:    map[string]int64{},
		readBarrier: &sync.WaitGroup{},
	}
	for _, j := range jobs {
		store.jobs[j.ID()] = storeJob(j)
	}
	store.readBarrier.Add(2)

	handler := commands.NewRedistributeWeekCommandHandler(
		memFactory{store}, services.NewRedistributor(clock), 0, discardLogger(),
	)
	cmd, err := commands.NewRedistributeWeekCommand(newTenant(t), w.Start(), false)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		results [2]services.RedistributionResult
		errList [2]error
	)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errList[i] = handler.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for i := range 2 {
		switch {
		case errList[i] == nil:
			succeeded++
			assert.Equal(t, 4, results[i].MovedJobs)
		default:
			require.ErrorIs(t, errList[i], commands.ErrConcurrentModification)
			assert.Zero(t, results[i].MovedJobs)
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, int64(1), store.versions[w.String()])
	for _, sj := range store.jobs {
		assert.Equal(t, 1, sj.version, "each job written exactly once")
	}
}
