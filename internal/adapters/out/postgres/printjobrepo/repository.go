package printjobrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
)

// GormPrintJobRepository implements PrintJobRepository using GORM.
type GormPrintJobRepository struct {
	db *gorm.DB
}

func NewGormPrintJobRepository(db *gorm.DB) *GormPrintJobRepository {
	return &GormPrintJobRepository{db: db}
}

func (r *GormPrintJobRepository) Add(ctx context.Context, job *printjob.PrintJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := fromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPrintJobRepository) Get(ctx context.Context, id uuid.UUID) (*printjob.PrintJob, error) {
	var dto PrintJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("print job", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

// UpdateStatus writes the mutable columns only while the stored status is
// still expected.
func (r *GormPrintJobRepository) UpdateStatus(ctx context.Context, job *printjob.PrintJob, expected printjob.Status) error {
	if err := job.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PrintJobDTO{}).
		Where("id = ? AND status = ?", job.ID(), string(expected)).
		Updates(map[string]any{
			"status":        string(job.Status()),
			"agent_id":      job.AgentID(),
			"error_message": job.ErrorMessage(),
			"printed_at":    job.PrintedAt(),
			"updated_at":    job.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("print job", job.ID().String())
	}

	return nil
}

func (r *GormPrintJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PrintJobDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("print job", id.String())
	}

	return nil
}

// ListStuckPending returns PENDING jobs created before the cutoff, most
// urgent first.
func (r *GormPrintJobRepository) ListStuckPending(ctx context.Context, createdBefore time.Time, limit int) ([]*printjob.PrintJob, error) {
	var dtos []PrintJobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(printjob.Pending), createdBefore).
		Order("priority DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*printjob.PrintJob, 0, len(dtos))
	for _, dto := range dtos {
		job, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (r *GormPrintJobRepository) PurgeCompleted(ctx context.Context, updatedBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(printjob.Completed), updatedBefore).
		Delete(&PrintJobDTO{})
	return result.RowsAffected, result.Error
}
