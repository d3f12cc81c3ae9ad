package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultRepushBatch caps how many stuck jobs one run pushes again.
const DefaultRepushBatch = 50

// RepushStuckPrintJobsCommand pushes PENDING jobs that no agent picked up
// within the threshold to the connected agents again. Job status is not
// touched.
//
// Example:
//
//	cmd, _ := NewRepushStuckPrintJobsCommand(30*time.Second, 0)
//	pushed, err := handler.Handle(ctx, cmd)
type RepushStuckPrintJobsCommand struct {
	threshold time.Duration
	limit     int

	guard guard.ConstructorGuard
}

var (
	ErrRepushStuckPrintJobsCommandIsNotConstructed = errors.New(
		"RepushStuckPrintJobsCommand must be created via NewRepushStuckPrintJobsCommand constructor",
	)
)

// NewRepushStuckPrintJobsCommand validates the threshold. A limit <= 0 uses
// DefaultRepushBatch.
func NewRepushStuckPrintJobsCommand(threshold time.Duration, limit int) (RepushStuckPrintJobsCommand, error) {
	if threshold <= 0 {
		return RepushStuckPrintJobsCommand{}, errs.NewValueIsOutOfRangeError("threshold", threshold, time.Second, nil)
	}
	if limit <= 0 {
		limit = DefaultRepushBatch
	}

	return RepushStuckPrintJobsCommand{
		threshold: threshold,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RepushStuckPrintJobsCommand) Validate() error {
	return c.guard.Validate(ErrRepushStuckPrintJobsCommandIsNotConstructed)
}

func (c RepushStuckPrintJobsCommand) Threshold() time.Duration { return c.threshold }
func (c RepushStuckPrintJobsCommand) Limit() int               { return c.limit }
