package queries

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

var ErrGetPrintJobHistoryQueryIsNotConstructed = errors.New(
	"GetPrintJobHistoryQuery must be created via NewGetPrintJobHistoryQuery constructor",
)

// GetPrintJobHistoryQuery pages through jobs newest first, optionally
// filtered by status.
type GetPrintJobHistoryQuery struct {
	status printjob.Status
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

func NewGetPrintJobHistoryQuery(status string, limit, offset int) (GetPrintJobHistoryQuery, error) {
	var filter printjob.Status
	if status != "" {
		s, err := printjob.ParseStatus(status)
		if err != nil {
			return GetPrintJobHistoryQuery{}, err
		}
		filter = s
	}

	if offset < 0 {
		return GetPrintJobHistoryQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, math.MaxInt32)
	}

	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	return GetPrintJobHistoryQuery{
		status: filter,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetPrintJobHistoryQuery) Status() printjob.Status { return q.status }
func (q GetPrintJobHistoryQuery) Limit() int              { return q.limit }
func (q GetPrintJobHistoryQuery) Offset() int             { return q.offset }

func (q GetPrintJobHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPrintJobHistoryQueryIsNotConstructed)
}
