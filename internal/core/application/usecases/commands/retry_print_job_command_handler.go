package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// RetryPrintJobCommandHandler resets a FAILED job to PENDING and pushes it
// to the agents again.
type RetryPrintJobCommandHandler struct {
	uowFactory  ports.PrintJobUoWFactory
	broadcaster ports.JobBroadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

func NewRetryPrintJobCommandHandler(
	uowFactory ports.PrintJobUoWFactory,
	broadcaster ports.JobBroadcaster,
	clk clock.Clock,
	logger *slog.Logger,
) RetryPrintJobCommandHandler {
	return RetryPrintJobCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		clock:       clk,
		logger:      logger.With("component", "retry_print_job"),
	}
}

// Handle returns InvalidRetryStateError unless the job is FAILED.
// A failed re-broadcast is logged; agents still find the job by polling.
func (h RetryPrintJobCommandHandler) Handle(ctx context.Context, cmd RetryPrintJobCommand) (*printjob.PrintJob, error) {
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

	if err = job.Retry(h.clock.Now()); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatus(ctx, job, printjob.Failed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.broadcaster.RetryBroadcast(ctx, job); err != nil {
		h.logger.WarnContext(ctx, "Retried job could not be broadcast", "jobId", job.ID(), "error", err)
	}

	h.logger.InfoContext(ctx, "Print job retried", "jobId", job.ID())
	return job, nil
}
