package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printsettings"
)

// PrintSettingsRepository stores the print settings singleton.
type PrintSettingsRepository interface {
	// GetOrCreate returns the stored settings, inserting defaults first when
	// no row exists. Concurrent callers all observe the same row.
	GetOrCreate(ctx context.Context, defaults printsettings.Settings) (printsettings.Settings, error)

	// Save replaces the stored settings.
	Save(ctx context.Context, settings printsettings.Settings) error
}

// NotificationSettingsRepository stores notification settings by family.
type NotificationSettingsRepository interface {
	// Get returns the stored settings and whether a row exists.
	Get(ctx context.Context, family notification.Family) (notification.Settings, bool, error)

	// Save inserts or replaces the settings of a family.
	Save(ctx context.Context, family notification.Family, settings notification.Settings) error
}

// CommunicationRepository is the append-only log of sent messages.
type CommunicationRepository interface {
	Add(ctx context.Context, record notification.CommunicationRecord) error
}
