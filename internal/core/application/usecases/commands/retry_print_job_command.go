package commands

import (
	"errors"

	"github.com/google/uuid"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRetryPrintJobCommandIsNotConstructed = errors.New(
		"RetryPrintJobCommand must be created via NewRetryPrintJobCommand constructor",
	)
	ErrDeletePrintJobCommandIsNotConstructed = errors.New(
		"DeletePrintJobCommand must be created via NewDeletePrintJobCommand constructor",
	)
)

// RetryPrintJobCommand puts a FAILED job back in the queue.
type RetryPrintJobCommand struct {
	jobID uuid.UUID

	guard guard.ConstructorGuard
}

func NewRetryPrintJobCommand(jobID uuid.UUID) (RetryPrintJobCommand, error) {
	if jobID == uuid.Nil {
		return RetryPrintJobCommand{}, errs.NewValueIsRequiredError("jobId")
	}

	return RetryPrintJobCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryPrintJobCommand) Validate() error {
	return c.guard.Validate(ErrRetryPrintJobCommandIsNotConstructed)
}

func (c RetryPrintJobCommand) JobID() uuid.UUID {
	return c.jobID
}

// DeletePrintJobCommand removes a job from the queue or history.
type DeletePrintJobCommand struct {
	jobID uuid.UUID

	guard guard.ConstructorGuard
}

func NewDeletePrintJobCommand(jobID uuid.UUID) (DeletePrintJobCommand, error) {
	if jobID == uuid.Nil {
		return DeletePrintJobCommand{}, errs.NewValueIsRequiredError("jobId")
	}

	return DeletePrintJobCommand{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePrintJobCommand) Validate() error {
	return c.guard.Validate(ErrDeletePrintJobCommandIsNotConstructed)
}

func (c DeletePrintJobCommand) JobID() uuid.UUID {
	return c.jobID
}
