// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with seconds precision and are managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(resyncHandler, resyncCommand, "*/30 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ResyncJob refreshes non-terminal entities on the board from their owning
// services, so statuses changed outside the dashboard show up without a
// manual reload. Overlapping runs are skipped.
package jobs
