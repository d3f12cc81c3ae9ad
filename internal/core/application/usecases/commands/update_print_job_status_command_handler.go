package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// UpdatePrintJobStatusCommandHandler applies agent reports to jobs.
// Two agents claiming the same PENDING job race on the conditional update;
// the loser gets ConcurrentModificationError.
type UpdatePrintJobStatusCommandHandler struct {
	uowFactory ports.PrintJobUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewUpdatePrintJobStatusCommandHandler(uowFactory ports.PrintJobUoWFactory, clk clock.Clock, logger *slog.Logger) UpdatePrintJobStatusCommandHandler {
	return UpdatePrintJobStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "update_print_job_status"),
	}
}

func (h UpdatePrintJobStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePrintJobStatusCommand) (*printjob.PrintJob, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PrintJobRepository()
	job, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}

	previous, err := job.ChangeStatus(cmd.Status(), cmd.AgentID(), cmd.ErrorMessage(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, job, previous); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if job.Status() == printjob.Failed {
		h.logger.WarnContext(ctx, "Print job failed", "jobId", job.ID(), "agentId", job.AgentID(), "error", job.ErrorMessage())
	} else {
		h.logger.InfoContext(ctx, "Print job status changed", "jobId", job.ID(), "from", previous, "to", job.Status())
	}

	return job, nil
}
