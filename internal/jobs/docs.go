// Package jobs provides the scheduled background tasks of the service.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderSyncJob pushes orders awaiting their initial registration to the
// remote execution system. It runs once at start and then every
// SYNC_INTERVAL (never tighter than five seconds).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(syncHandler, cfg.SyncInterval, commands.DefaultSyncBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed iteration is logged and the next tick retries. A record store
// that is not configured only produces a warning. Failures of single orders
// are handled by the command handler and never reach the job.
package jobs
