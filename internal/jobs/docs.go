// Package jobs provides scheduled background tasks of the planner.
//
// Jobs use github.com/robfig/cron/v3 with six-field (seconds) expressions.
//
// # Available Jobs
//
// CapacitySweepJob runs the scheduled_sweep trigger for every tenant with a roster, so
// weeks drift back under capacity even when no user action happened. The default
// schedule is DefaultSweepSpec.
//
// # Usage
//
//	sweep := jobs.NewCapacitySweepJob(workerRepo, dispatcher, cfg.SweepSpec, 0, logger)
//	jobManager := jobs.NewJobManager(sweep)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A tenant whose sweep fails is logged and the remaining tenants still run.
// Weeks protected by the current-week guard are reported as skipped, not as failures.
package jobs
