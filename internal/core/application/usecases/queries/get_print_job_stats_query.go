package queries

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/guard"
)

// StuckPendingThreshold is how long a job may wait in PENDING before it
// counts as stuck.
const StuckPendingThreshold = 30 * time.Second

var ErrGetPrintJobStatsQueryIsNotConstructed = errors.New(
	"GetPrintJobStatsQuery must be created via NewGetPrintJobStatsQuery constructor",
)

type GetPrintJobStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPrintJobStatsQuery() GetPrintJobStatsQuery {
	return GetPrintJobStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPrintJobStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPrintJobStatsQueryIsNotConstructed)
}

// GetPrintJobStatsQueryResponse summarizes jobs that need attention.
type GetPrintJobStatsQueryResponse struct {
	FailedCount       int64
	StuckPendingCount int64
	TotalIssues       int64
}

type GetPrintJobStatsQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewGetPrintJobStatsQueryHandler(db *gorm.DB, clk clock.Clock) GetPrintJobStatsQueryHandler {
	return GetPrintJobStatsQueryHandler{db: db, clock: clk}
}

func (h GetPrintJobStatsQueryHandler) Handle(
	ctx context.Context,
	query GetPrintJobStatsQuery,
) (GetPrintJobStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPrintJobStatsQueryResponse{}, err
	}

	cutoff := h.clock.Now().Add(-StuckPendingThreshold)

	var resp GetPrintJobStatsQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ? AND created_at < ?)
		FROM print_jobs
	`, string(printjob.Failed), string(printjob.Pending), cutoff).Row().
		Scan(&resp.FailedCount, &resp.StuckPendingCount)
	if err != nil {
		return GetPrintJobStatsQueryResponse{}, err
	}

	resp.TotalIssues = resp.FailedCount + resp.StuckPendingCount
	return resp, nil
}
