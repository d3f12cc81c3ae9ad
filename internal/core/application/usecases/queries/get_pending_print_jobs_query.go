package queries

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultPendingLimit = 10
	MaxPendingLimit     = 50
)

var ErrGetPendingPrintJobsQueryIsNotConstructed = errors.New(
	"GetPendingPrintJobsQuery must be created via NewGetPendingPrintJobsQuery constructor",
)

// GetPendingPrintJobsQuery is an agent's poll for work.
type GetPendingPrintJobsQuery struct {
	agentID   string
	agentType printjob.Destination
	limit     int
	guard     guard.ConstructorGuard
}

// NewGetPendingPrintJobsQuery builds a poll. A non-positive limit means
// DefaultPendingLimit and anything above MaxPendingLimit is capped.
// An empty agentType returns jobs for every agent type.
func NewGetPendingPrintJobsQuery(agentID, agentType string, limit int) (GetPendingPrintJobsQuery, error) {
	var destination printjob.Destination
	if agentType != "" {
		d, err := printjob.ParseDestination(agentType)
		if err != nil {
			return GetPendingPrintJobsQuery{}, err
		}
		if !d.IsAgent() {
			return GetPendingPrintJobsQuery{}, errs.NewValueIsInvalidErrorWithCause("agentType",
				fmt.Errorf("%q is not a printer agent", agentType))
		}
		destination = d
	}

	switch {
	case limit <= 0:
		limit = DefaultPendingLimit
	case limit > MaxPendingLimit:
		limit = MaxPendingLimit
	}

	return GetPendingPrintJobsQuery{
		agentID:   strings.TrimSpace(agentID),
		agentType: destination,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetPendingPrintJobsQuery) AgentID() string                 { return q.agentID }
func (q GetPendingPrintJobsQuery) AgentType() printjob.Destination { return q.agentType }
func (q GetPendingPrintJobsQuery) Limit() int                      { return q.limit }

func (q GetPendingPrintJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingPrintJobsQueryIsNotConstructed)
}
