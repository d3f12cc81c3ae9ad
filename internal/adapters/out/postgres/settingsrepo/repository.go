package settingsrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printsettings"
)

// GormPrintSettingsRepository implements PrintSettingsRepository using GORM.
type GormPrintSettingsRepository struct {
	db *gorm.DB
}

func NewGormPrintSettingsRepository(db *gorm.DB) *GormPrintSettingsRepository {
	return &GormPrintSettingsRepository{db: db}
}

// GetOrCreate inserts the defaults unless a row exists, then reads the row
// back. Racing replicas all end up reading the same row.
func (r *GormPrintSettingsRepository) GetOrCreate(ctx context.Context, defaults printsettings.Settings) (printsettings.Settings, error) {
	db := r.db.WithContext(ctx)

	seed := printSettingsFromDomain(defaults)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return printsettings.Settings{}, err
	}

	var dto PrintSettingsDTO
	if err := db.First(&dto, "id = ?", printSettingsRowID).Error; err != nil {
		return printsettings.Settings{}, err
	}

	return printSettingsToDomain(dto)
}

// Save replaces the stored settings.
func (r *GormPrintSettingsRepository) Save(ctx context.Context, settings printsettings.Settings) error {
	dto := printSettingsFromDomain(settings)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"configs", "updated_at"}),
		}).
		Create(&dto).Error
}

// GormNotificationSettingsRepository implements NotificationSettingsRepository using GORM.
type GormNotificationSettingsRepository struct {
	db *gorm.DB
}

func NewGormNotificationSettingsRepository(db *gorm.DB) *GormNotificationSettingsRepository {
	return &GormNotificationSettingsRepository{db: db}
}

func (r *GormNotificationSettingsRepository) Get(ctx context.Context, family notification.Family) (notification.Settings, bool, error) {
	var dto NotificationSettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "family = ?", string(family)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notification.Settings{}, false, nil
	}
	if err != nil {
		return notification.Settings{}, false, err
	}

	return dto.Settings, true, nil
}

func (r *GormNotificationSettingsRepository) Save(ctx context.Context, family notification.Family, settings notification.Settings) error {
	dto := NotificationSettingsDTO{Family: string(family), Settings: settings}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "family"}},
			DoUpdates: clause.AssignmentColumns([]string{"settings", "updated_at"}),
		}).
		Create(&dto).Error
}
