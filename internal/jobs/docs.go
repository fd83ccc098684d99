// Package jobs provides scheduled background tasks for the parcel tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SyncPollJob - Runs the sync engine's delivery cycle every SYNC_POLL_INTERVAL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(engine, cfg.SyncPollInterval, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The poll uses "@every <interval>" with SkipIfStillRunning, so a slow cycle
// never overlaps the next one.
//
// # Error Handling
//
// - An unreachable broadcast log is logged as a warning and retried on the next tick
// - Any other poll error is logged as an error
package jobs
