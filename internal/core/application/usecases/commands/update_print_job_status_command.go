package commands

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdatePrintJobStatusCommandIsNotConstructed = errors.New(
	"UpdatePrintJobStatusCommand must be created via NewUpdatePrintJobStatusCommand constructor",
)

// UpdatePrintJobStatusCommand is an agent's report about a job.
type UpdatePrintJobStatusCommand struct { //nolint:recvcheck //using for validation
	jobID        uuid.UUID
	status       printjob.Status
	agentID      string
	errorMessage string

	guard guard.ConstructorGuard
}

func NewUpdatePrintJobStatusCommand(jobID uuid.UUID, status, agentID, errorMessage string) (UpdatePrintJobStatusCommand, error) {
	cmd := UpdatePrintJobStatusCommand{
		agentID:      strings.TrimSpace(agentID),
		errorMessage: strings.TrimSpace(errorMessage),
		guard:        guard.NewConstructorGuard(),
	}

	var idErr error
	if jobID == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("jobId")
	}
	cmd.jobID = jobID

	parsed, statusErr := printjob.ParseStatus(strings.TrimSpace(status))
	cmd.status = parsed

	if err := errors.Join(idErr, statusErr); err != nil {
		return UpdatePrintJobStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdatePrintJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePrintJobStatusCommandIsNotConstructed)
}

func (c UpdatePrintJobStatusCommand) JobID() uuid.UUID        { return c.jobID }
func (c UpdatePrintJobStatusCommand) Status() printjob.Status { return c.status }
func (c UpdatePrintJobStatusCommand) AgentID() string         { return c.agentID }
func (c UpdatePrintJobStatusCommand) ErrorMessage() string    { return c.errorMessage }
