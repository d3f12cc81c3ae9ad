package printjob

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a print job.
//
// State transitions:
//
//	PENDING ──> PRINTING ──┬──> COMPLETED
//	   ▲                   │
//	   │                   └──> FAILED
//	   └──── retry ─────────────────┘
//
// An agent claims a job by moving it to PRINTING and reports the outcome.
// FAILED returns to PENDING only through an explicit retry.
type Status string

const (
	Pending   Status = "PENDING"
	Printing  Status = "PRINTING"
	Completed Status = "COMPLETED"
	Failed    Status = "FAILED"
)

var transitions = map[Status][]Status{
	Pending:  {Printing},
	Printing: {Completed, Failed},
}

// AllStatuses returns every job status.
func AllStatuses() []Status {
	return []Status{Pending, Printing, Completed, Failed}
}

// ParseStatus converts an external string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%q is not a valid print job status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// TransitionTo validates an agent-reported status change.
// Retry is not an agent transition and is handled by PrintJob.Retry.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}

	allowed := transitions[s]
	if !slices.Contains(allowed, to) {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = a.String()
		}
		return "", errs.NewInvalidTransitionError("print job", s.String(), to.String(), names)
	}

	return to, nil
}
