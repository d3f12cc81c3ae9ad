package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// RepushStuckPrintJobsCommandHandler reads stuck jobs in a short read-only
// unit of work and pushes them after the transaction is released.
//
// Example:
//
//	handler := NewRepushStuckPrintJobsCommandHandler(uowFactory, hub, clock.System{}, logger)
//
//	// Typically run by a scheduler
//	if _, err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("repush failed: %w", err)
//	}
type RepushStuckPrintJobsCommandHandler struct {
	uowFactory  ports.PrintJobUoWFactory
	broadcaster ports.JobBroadcaster
	clock       clock.Clock
	logger      *slog.Logger
}

func NewRepushStuckPrintJobsCommandHandler(
	uowFactory ports.PrintJobUoWFactory,
	broadcaster ports.JobBroadcaster,
	clk clock.Clock,
	logger *slog.Logger,
) RepushStuckPrintJobsCommandHandler {
	return RepushStuckPrintJobsCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		clock:       clk,
		logger:      logger.With("component", "repush_stuck_print_jobs"),
	}
}

// Handle returns how many jobs were pushed. A failed push is logged and the
// remaining jobs are still pushed.
func (h RepushStuckPrintJobsCommandHandler) Handle(ctx context.Context, cmd RepushStuckPrintJobsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.PrintJobRepository().ListStuckPending(ctx, h.clock.Now().Add(-cmd.Threshold()), cmd.Limit())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	pushed := 0
	for _, job := range jobs {
		if err = h.broadcaster.Broadcast(ctx, job); err != nil {
			h.logger.WarnContext(ctx, "Stuck job push failed", "jobId", job.ID(), "error", err)
			continue
		}
		pushed++
	}

	if pushed > 0 {
		h.logger.InfoContext(ctx, "Stuck print jobs pushed again", "count", pushed)
	}
	return pushed, nil
}
