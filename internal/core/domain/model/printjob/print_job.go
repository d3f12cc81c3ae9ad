package printjob

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrPrintJobIsNotConstructed is returned when a PrintJob was not built by
// NewPrintJob or RestorePrintJob.
var ErrPrintJobIsNotConstructed = errors.New("PrintJob must be created via NewPrintJob or RestorePrintJob")

// PrintJob is a document waiting for, being handled by, or already handled
// by a printer agent.
//
// PrintJob follows these invariants:
//   - Agent type is always an agent destination, never browser
//   - Copies is at least 1
//   - Status changes PENDING -> PRINTING -> COMPLETED | FAILED, and FAILED -> PENDING only by Retry
//   - printedAt is set only when the job completes
type PrintJob struct {
	id           uuid.UUID
	documentType DocumentType
	orderID      *uuid.UUID
	payload      Payload
	agentType    Destination
	printerName  string
	printerTray  string
	copies       int
	priority     int
	templateID   string
	status       Status
	agentID      string
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
	printedAt    *time.Time

	guard guard.ConstructorGuard
}

// Spec describes a job to be queued.
type Spec struct {
	DocumentType DocumentType
	OrderID      *uuid.UUID
	Payload      Payload
	AgentType    Destination
	PrinterName  string
	PrinterTray  string
	Copies       int
	Priority     int
	TemplateID   string
}

// NewPrintJob creates a PENDING job.
//
// Returns:
//   - *PrintJob: the job with a fresh id and createdAt = updatedAt = now
//   - error: joined validation errors if the spec is invalid
func NewPrintJob(spec Spec, now time.Time) (*PrintJob, error) {
	job := &PrintJob{
		id:           uuid.New(),
		documentType: spec.DocumentType,
		orderID:      spec.OrderID,
		payload:      spec.Payload,
		agentType:    spec.AgentType,
		printerName:  strings.TrimSpace(spec.PrinterName),
		printerTray:  strings.TrimSpace(spec.PrinterTray),
		copies:       spec.Copies,
		priority:     spec.Priority,
		templateID:   spec.TemplateID,
		status:       Pending,
		createdAt:    now,
		updatedAt:    now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := job.validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Snapshot is the full persisted state of a job.
type Snapshot struct {
	ID           uuid.UUID
	DocumentType DocumentType
	OrderID      *uuid.UUID
	Payload      Payload
	AgentType    Destination
	PrinterName  string
	PrinterTray  string
	Copies       int
	Priority     int
	TemplateID   string
	Status       Status
	AgentID      string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PrintedAt    *time.Time
}

// RestorePrintJob rebuilds a job loaded from storage.
func RestorePrintJob(s Snapshot) (*PrintJob, error) {
	job := &PrintJob{
		id:           s.ID,
		documentType: s.DocumentType,
		orderID:      s.OrderID,
		payload:      s.Payload,
		agentType:    s.AgentType,
		printerName:  s.PrinterName,
		printerTray:  s.PrinterTray,
		copies:       s.Copies,
		priority:     s.Priority,
		templateID:   s.TemplateID,
		status:       s.Status,
		agentID:      s.AgentID,
		errorMessage: s.ErrorMessage,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		printedAt:    s.PrintedAt,
		guard:        guard.NewConstructorGuard(),
	}

	var idErr error
	if s.ID == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if err := errors.Join(idErr, s.Status.Validate(), job.validate()); err != nil {
		return nil, err
	}
	return job, nil
}

func (j *PrintJob) validate() error {
	var agentErr, copiesErr error
	if !j.agentType.IsAgent() {
		agentErr = errs.NewValueIsInvalidErrorWithCause("agent type is invalid",
			fmt.Errorf("%q is not a printer agent", string(j.agentType)))
	}
	if j.copies < 1 {
		copiesErr = errs.NewValueIsInvalidErrorWithCause("copies", fmt.Errorf("%d is less than 1", j.copies))
	}

	return errors.Join(
		j.documentType.Validate(),
		j.payload.format.Validate(),
		agentErr,
		copiesErr,
	)
}

// Validate ensures the job was built by a constructor.
func (j *PrintJob) Validate() error {
	if j == nil {
		return ErrPrintJobIsNotConstructed
	}
	return j.guard.Validate(ErrPrintJobIsNotConstructed)
}

// Snapshot returns the full state of the job.
func (j *PrintJob) Snapshot() Snapshot {
	return Snapshot{
		ID:           j.id,
		DocumentType: j.documentType,
		OrderID:      j.orderID,
		Payload:      j.payload,
		AgentType:    j.agentType,
		PrinterName:  j.printerName,
		PrinterTray:  j.printerTray,
		Copies:       j.copies,
		Priority:     j.priority,
		TemplateID:   j.templateID,
		Status:       j.status,
		AgentID:      j.agentID,
		ErrorMessage: j.errorMessage,
		CreatedAt:    j.createdAt,
		UpdatedAt:    j.updatedAt,
		PrintedAt:    j.printedAt,
	}
}

func (j *PrintJob) ID() uuid.UUID              { return j.id }
func (j *PrintJob) DocumentType() DocumentType { return j.documentType }
func (j *PrintJob) OrderID() *uuid.UUID        { return j.orderID }
func (j *PrintJob) Payload() Payload           { return j.payload }
func (j *PrintJob) AgentType() Destination     { return j.agentType }
func (j *PrintJob) PrinterName() string        { return j.printerName }
func (j *PrintJob) PrinterTray() string        { return j.printerTray }
func (j *PrintJob) Copies() int                { return j.copies }
func (j *PrintJob) Priority() int              { return j.priority }
func (j *PrintJob) TemplateID() string         { return j.templateID }
func (j *PrintJob) Status() Status             { return j.status }
func (j *PrintJob) AgentID() string            { return j.agentID }
func (j *PrintJob) ErrorMessage() string       { return j.errorMessage }
func (j *PrintJob) CreatedAt() time.Time       { return j.createdAt }
func (j *PrintJob) UpdatedAt() time.Time       { return j.updatedAt }
func (j *PrintJob) PrintedAt() *time.Time      { return j.printedAt }

// ChangeStatus applies an agent report.
//
// The agent id, when given, is recorded. errorMessage is kept only for FAILED.
// printedAt is set only on COMPLETED.
//
// Returns:
//   - the status before the change, used as the expected value of the
//     conditional update
//   - InvalidTransitionError if the edge is not allowed
func (j *PrintJob) ChangeStatus(to Status, agentID, errorMessage string, at time.Time) (Status, error) {
	next, err := j.status.TransitionTo(to)
	if err != nil {
		return "", err
	}

	previous := j.status
	j.status = next
	j.updatedAt = at
	if agentID != "" {
		j.agentID = agentID
	}

	switch next {
	case Completed:
		printedAt := at
		j.printedAt = &printedAt
		j.errorMessage = ""
	case Failed:
		j.errorMessage = errorMessage
	}

	return previous, nil
}

// Retry puts a FAILED job back in the queue.
//
// Agent id, error message and printedAt are cleared.
//
// Returns InvalidRetryStateError unless the job is FAILED.
func (j *PrintJob) Retry(at time.Time) error {
	if j.status != Failed {
		return errs.NewInvalidRetryStateError(j.id, j.status.String())
	}

	j.status = Pending
	j.agentID = ""
	j.errorMessage = ""
	j.printedAt = nil
	j.updatedAt = at
	return nil
}

// IsStuck reports whether a PENDING job has waited longer than threshold.
func (j *PrintJob) IsStuck(now time.Time, threshold time.Duration) bool {
	return j.status == Pending && now.Sub(j.createdAt) > threshold
}
