package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	orderSyncJob *OrderSyncJob
}

// NewJobManager creates the manager with the synchronizer job.
func NewJobManager(
	syncHandler SyncHandler,
	syncInterval time.Duration,
	syncBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderSyncJob: NewOrderSyncJob(syncHandler, syncInterval, syncBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start order sync job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running iterations.
func (jm *JobManager) StopAll() {
	jm.orderSyncJob.Stop()
}
