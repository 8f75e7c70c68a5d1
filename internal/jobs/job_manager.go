package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryTransitionJob *DeliveryTransitionJob
}

func NewJobManager(deliveryTransitionJob *DeliveryTransitionJob) *JobManager {
	return &JobManager{
		deliveryTransitionJob: deliveryTransitionJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryTransitionJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery transition job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryTransitionJob.Stop()
}
