package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type DeletePrintJobCommandHandler struct {
	uowFactory ports.PrintJobUoWFactory
}

func NewDeletePrintJobCommandHandler(uowFactory ports.PrintJobUoWFactory) DeletePrintJobCommandHandler {
	return DeletePrintJobCommandHandler{uowFactory: uowFactory}
}

// Handle returns ObjectNotFoundError when the job does not exist.
func (h DeletePrintJobCommandHandler) Handle(ctx context.Context, cmd DeletePrintJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PrintJobRepository().Delete(ctx, cmd.JobID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
