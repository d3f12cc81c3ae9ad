package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/printjob"
)

// PrintJobRepository persists print jobs.
type PrintJobRepository interface {
	// Add stores a new job.
	Add(ctx context.Context, job *printjob.PrintJob) error

	// Get loads a job. Returns ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*printjob.PrintJob, error)

	// UpdateStatus writes status, agent, error message, printedAt and updatedAt
	// only if the stored status still equals expected. Returns
	// ConcurrentModificationError when no row matched.
	UpdateStatus(ctx context.Context, job *printjob.PrintJob, expected printjob.Status) error

	// Delete removes a job. Returns ObjectNotFoundError when it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListStuckPending returns up to limit PENDING jobs created before the
	// cutoff, in consumption order.
	ListStuckPending(ctx context.Context, createdBefore time.Time, limit int) ([]*printjob.PrintJob, error)

	// PurgeCompleted deletes COMPLETED jobs last updated before the cutoff and
	// returns how many were removed.
	PurgeCompleted(ctx context.Context, updatedBefore time.Time) (int64, error)
}
