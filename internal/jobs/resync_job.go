package jobs

import (
	"context"
	"log/slog"

	"statusflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EntityResyncer runs one resync pass over the entity board.
type EntityResyncer interface {
	Handle(ctx context.Context, command commands.ResyncEntitiesCommand) (commands.ResyncResult, error)
}

// ResyncJob refreshes tracked entities from their owning services on a cron
// schedule with seconds precision.
type ResyncJob struct {
	handler EntityResyncer
	command commands.ResyncEntitiesCommand
	spec    string
	cron    *cron.Cron
	cancel  context.CancelFunc
	ctx     context.Context
	logger  *slog.Logger
}

func NewResyncJob(
	handler EntityResyncer,
	command commands.ResyncEntitiesCommand,
	spec string,
	logger *slog.Logger,
) *ResyncJob {
	log := logger.With("component", "resync_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &ResyncJob{
		handler: handler,
		command: command,
		spec:    spec,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		ctx:    ctx,
		cancel: cancel,
		logger: log,
	}
}

// Start schedules the job. A pass still running when the next one is due
// causes that run to be skipped.
func (j *ResyncJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Resync job started", "schedule", j.spec)
	return nil
}

// Run executes a single pass.
func (j *ResyncJob) Run() {
	result, err := j.handler.Handle(j.ctx, j.command)
	if err != nil {
		j.logger.ErrorContext(j.ctx, "Resync job failed", "error", err)
		return
	}
	if result.Failed > 0 {
		j.logger.WarnContext(j.ctx, "Resync job finished with failures",
			"refreshed", result.Refreshed, "skipped", result.Skipped, "failed", result.Failed)
		return
	}
	j.logger.DebugContext(j.ctx, "Resync job finished",
		"refreshed", result.Refreshed, "skipped", result.Skipped)
}

// Stop cancels a running pass and waits for it to return.
func (j *ResyncJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Resync job stopped")
}
