package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
)

// CompletedJobPurger deletes old completed jobs.
type CompletedJobPurger interface {
	Handle(ctx context.Context, cmd commands.PurgePrintJobsCommand) (int64, error)
}

// PurgeCompletedJobsJob keeps the print_jobs table bounded.
type PurgeCompletedJobsJob struct {
	handler   CompletedJobPurger
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPurgeCompletedJobsJob(handler CompletedJobPurger, schedule string, retention time.Duration, logger *slog.Logger) *PurgeCompletedJobsJob {
	return &PurgeCompletedJobsJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		cron:      newCron(),
		logger:    logger.With("component", "purge_completed_jobs_job"),
	}
}

// Start schedules the purge.
func (j *PurgeCompletedJobsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Completed job purge started", "schedule", j.schedule, "retention", j.retention)
	return nil
}

// Stop waits for a running purge to finish.
func (j *PurgeCompletedJobsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Completed job purge stopped")
}

func (j *PurgeCompletedJobsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cmd, err := commands.NewPurgePrintJobsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Completed job purge misconfigured", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Completed job purge failed", "error", err)
	}
}
