package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
)

// StuckJobRepusher pushes stuck PENDING jobs again.
type StuckJobRepusher interface {
	Handle(ctx context.Context, cmd commands.RepushStuckPrintJobsCommand) (int, error)
}

// RepushStuckJobsJob re-sends PENDING jobs no agent claimed within the
// threshold, for agents that were offline when the job was first pushed.
type RepushStuckJobsJob struct {
	handler   StuckJobRepusher
	threshold time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewRepushStuckJobsJob(handler StuckJobRepusher, schedule string, threshold time.Duration, logger *slog.Logger) *RepushStuckJobsJob {
	return &RepushStuckJobsJob{
		handler:   handler,
		threshold: threshold,
		schedule:  schedule,
		cron:      newCron(),
		logger:    logger.With("component", "repush_stuck_jobs_job"),
	}
}

// Start schedules the job.
func (j *RepushStuckJobsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stuck job re-push started", "schedule", j.schedule, "threshold", j.threshold)
	return nil
}

// Stop waits for a running re-push to finish.
func (j *RepushStuckJobsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stuck job re-push stopped")
}

func (j *RepushStuckJobsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cmd, err := commands.NewRepushStuckPrintJobsCommand(j.threshold, 0)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stuck job re-push misconfigured", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Stuck job re-push failed", "error", err)
	}
}
