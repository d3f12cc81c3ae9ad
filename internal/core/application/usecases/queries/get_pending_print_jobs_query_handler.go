package queries

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/printjob"
)

// GetPendingPrintJobsQueryHandler returns the jobs an agent should print
// next: PENDING only, highest priority first, oldest first within a priority.
// Jobs linked to an order carry its context.
type GetPendingPrintJobsQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGetPendingPrintJobsQueryHandler(db *gorm.DB, logger *slog.Logger) GetPendingPrintJobsQueryHandler {
	return GetPendingPrintJobsQueryHandler{db: db, logger: logger.With("component", "pending-print-jobs")}
}

func (h GetPendingPrintJobsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingPrintJobsQuery,
) ([]PrintJobResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+printJobColumns+`,`+orderContextColumns+`
		FROM print_jobs pj`+orderContextJoins+`
		WHERE pj.status = ?
		  AND (? = '' OR pj.agent_type = ?)
		ORDER BY pj.priority DESC, pj.created_at ASC
		LIMIT ?
	`, string(printjob.Pending), string(query.AgentType()), string(query.AgentType()), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]PrintJobResponse, 0)
	for rows.Next() {
		job, err := scanPrintJobWithOrder(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	h.logger.DebugContext(ctx, "agent polled",
		"agent_id", query.AgentID(),
		"agent_type", query.AgentType().String(),
		"jobs", len(jobs))

	return jobs, nil
}
