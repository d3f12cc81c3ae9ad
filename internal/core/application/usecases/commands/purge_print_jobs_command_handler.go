package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// PurgePrintJobsCommandHandler deletes old completed jobs in one statement.
type PurgePrintJobsCommandHandler struct {
	uowFactory ports.PrintJobUoWFactory
	clock      clock.Clock
	logger     *slog.Logger
}

func NewPurgePrintJobsCommandHandler(uowFactory ports.PrintJobUoWFactory, clk clock.Clock, logger *slog.Logger) PurgePrintJobsCommandHandler {
	return PurgePrintJobsCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "purge_print_jobs"),
	}
}

// Handle returns the number of deleted jobs.
func (h PurgePrintJobsCommandHandler) Handle(ctx context.Context, cmd PurgePrintJobsCommand) (int64, error) {
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

	cutoff := h.clock.Now().Add(-cmd.Retention())
	removed, err := uow.PrintJobRepository().PurgeCompleted(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if removed > 0 {
		h.logger.InfoContext(ctx, "Completed print jobs purged", "count", removed, "before", cutoff)
	}
	return removed, nil
}
