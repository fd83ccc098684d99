package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	syncPollJob *SyncPollJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(poller Poller, pollInterval time.Duration, logger *slog.Logger) *JobManager {
	return &JobManager{
		syncPollJob: NewSyncPollJob(poller, pollInterval, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.syncPollJob.Start(); err != nil {
		return fmt.Errorf("failed to start sync poll job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.syncPollJob.Stop()
}
