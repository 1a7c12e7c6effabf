package jobs

import (
	"fmt"
	"log/slog"

	"statusflow/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	resyncJob *ResyncJob
}

// NewJobManager creates the jobs from their handlers and schedules.
func NewJobManager(
	resyncHandler EntityResyncer,
	resyncCommand commands.ResyncEntitiesCommand,
	resyncSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		resyncJob: NewResyncJob(resyncHandler, resyncCommand, resyncSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.resyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start resync job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running passes.
func (jm *JobManager) StopAll() {
	jm.resyncJob.Stop()
}
