package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parceltrack/internal/core/application/syncengine"

	"github.com/robfig/cron/v3"
)

// Poller runs one sync delivery cycle.
type Poller interface {
	Poll(ctx context.Context) error
	Pending() int
}

// SyncPollJob drives the sync engine on a fixed interval so subscribers
// catch up even when no local publish or wake signal arrives.
type SyncPollJob struct {
	poller   Poller
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSyncPollJob creates a job polling every interval. Intervals below one
// second are raised to one second.
func NewSyncPollJob(poller Poller, interval time.Duration, logger *slog.Logger) *SyncPollJob {
	if interval < time.Second {
		interval = time.Second
	}
	return &SyncPollJob{
		poller:   poller,
		interval: interval,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "sync_poll_job"),
	}
}

// Start schedules the poll.
func (j *SyncPollJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sync poll job started", "interval", j.interval.String())
	return nil
}

// Run performs a single poll.
func (j *SyncPollJob) Run(ctx context.Context) {
	err := j.poller.Poll(ctx)
	switch {
	case err == nil:
	case errors.Is(err, syncengine.ErrSyncUnavailable):
		// Transient; the next tick retries.
		j.logger.WarnContext(ctx, "Sync poll skipped", "error", err, "pending", j.poller.Pending())
	default:
		j.logger.ErrorContext(ctx, "Sync poll failed", "error", err)
	}
}

// Stop stops the schedule and waits for a running poll to finish.
func (j *SyncPollJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sync poll job stopped")
}
