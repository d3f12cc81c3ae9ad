package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPrintJobHistoryQueryHandler lists jobs newest first for the back office.
type GetPrintJobHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetPrintJobHistoryQueryHandler(db *gorm.DB) GetPrintJobHistoryQueryHandler {
	return GetPrintJobHistoryQueryHandler{db: db}
}

func (h GetPrintJobHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPrintJobHistoryQuery,
) ([]PrintJobResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	status := string(query.Status())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+printJobColumns+`,`+orderContextColumns+`
		FROM print_jobs pj`+orderContextJoins+`
		WHERE (? = '' OR pj.status = ?)
		ORDER BY pj.created_at DESC, pj.id
		LIMIT ? OFFSET ?
	`, status, status, query.Limit(), query.Offset()).Rows()
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

	return jobs, nil
}
