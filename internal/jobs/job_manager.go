package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	capacitySweepJob *CapacitySweepJob
}

func NewJobManager(capacitySweepJob *CapacitySweepJob) *JobManager {
	return &JobManager{capacitySweepJob: capacitySweepJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.capacitySweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start capacity sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.capacitySweepJob.Stop()
}
