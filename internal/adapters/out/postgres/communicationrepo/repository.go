// Package communicationrepo appends sent messages to the communication_records table.
package communicationrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/notification"
)

// CommunicationRecordDTO is a row of the communication_records table.
type CommunicationRecordDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel   string    `gorm:"size:8;not null"`
	Recipient string    `gorm:"not null"`
	Subject   string
	Message   string `gorm:"type:text"`
	Automatic bool
	Provider  string    `gorm:"size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (CommunicationRecordDTO) TableName() string {
	return "communication_records"
}

// GormCommunicationRepository implements CommunicationRepository using GORM.
type GormCommunicationRepository struct {
	db *gorm.DB
}

func NewGormCommunicationRepository(db *gorm.DB) *GormCommunicationRepository {
	return &GormCommunicationRepository{db: db}
}

func (r *GormCommunicationRepository) Add(ctx context.Context, record notification.CommunicationRecord) error {
	dto := CommunicationRecordDTO{
		ID:        record.ID,
		OrderID:   record.OrderID,
		Channel:   string(record.Channel),
		Recipient: record.Recipient,
		Subject:   record.Subject,
		Message:   record.Message,
		Automatic: record.Automatic,
		Provider:  record.Provider,
		CreatedAt: record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the messages sent for an order, oldest first.
func (r *GormCommunicationRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]notification.CommunicationRecord, error) {
	var dtos []CommunicationRecordDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]notification.CommunicationRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, notification.CommunicationRecord{
			ID:        dto.ID,
			OrderID:   dto.OrderID,
			Channel:   notification.Channel(dto.Channel),
			Recipient: dto.Recipient,
			Subject:   dto.Subject,
			Message:   dto.Message,
			Automatic: dto.Automatic,
			Provider:  dto.Provider,
			CreatedAt: dto.CreatedAt,
		})
	}
	return records, nil
}
