package orderrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Get loads an order with its items, customer and recipient.
// A customer_id that points nowhere leaves the customer nil.
func (r *GormOrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var items []OrderItemDTO
	if err := db.Where("order_id = ?", id).Order("position").Find(&items).Error; err != nil {
		return nil, err
	}

	var customer *CustomerDTO
	if dto.CustomerID != nil {
		var c CustomerDTO
		found, err := findOptional(db, &c, *dto.CustomerID)
		if err != nil {
			return nil, err
		}
		if found {
			customer = &c
		}
	}

	var recipient *RecipientDTO
	if dto.RecipientID != nil {
		var rec RecipientDTO
		found, err := findOptional(db, &rec, *dto.RecipientID)
		if err != nil {
			return nil, err
		}
		if found {
			recipient = &rec
		}
	}

	return toDomain(dto, items, customer, recipient)
}

// UpdateStatus is a compare-and-set on the status column.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID(), string(expected)).
		Updates(map[string]any{
			"status":     string(aggregate.Status()),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("order", aggregate.ID().String())
	}

	return nil
}

func findOptional(db *gorm.DB, dest any, id uuid.UUID) (bool, error) {
	result := db.Limit(1).Find(dest, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
