package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgePrintJobsCommandIsNotConstructed = errors.New(
	"PurgePrintJobsCommand must be created via NewPurgePrintJobsCommand constructor",
)

// PurgePrintJobsCommand removes COMPLETED jobs whose last update is older
// than the retention. FAILED and PENDING jobs are never purged.
type PurgePrintJobsCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgePrintJobsCommand(retention time.Duration) (PurgePrintJobsCommand, error) {
	if retention <= 0 {
		return PurgePrintJobsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, time.Hour, nil)
	}

	return PurgePrintJobsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPurgePrintJobsCommandIsNotConstructed if validation fails.
func (c PurgePrintJobsCommand) Validate() error {
	return c.guard.Validate(
		ErrPurgePrintJobsCommandIsNotConstructed,
	)
}

func (c PurgePrintJobsCommand) Retention() time.Duration {
	return c.retention
}
