package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/communicationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/printjobrepo"
	"fulfillment/internal/adapters/out/postgres/settingsrepo"
)

// Models lists every table owned by the service, in creation order.
func Models() []any {
	return []any{
		&orderrepo.CustomerDTO{},
		&orderrepo.RecipientDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&printjobrepo.PrintJobDTO{},
		&settingsrepo.PrintSettingsDTO{},
		&settingsrepo.NotificationSettingsDTO{},
		&communicationrepo.CommunicationRecordDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
