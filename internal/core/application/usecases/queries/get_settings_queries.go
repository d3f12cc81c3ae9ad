package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printsettings"
)

// CurrentPrintSettings is satisfied by the print settings provider.
type CurrentPrintSettings interface {
	Current(ctx context.Context) (printsettings.Settings, error)
}

// EffectiveNotificationSettings is satisfied by the notification settings
// provider. Effective falls back to the shipped defaults when nothing is stored.
type EffectiveNotificationSettings interface {
	Effective(ctx context.Context) (notification.Settings, error)
}

// GetPrintSettingsQueryHandler returns the current print settings snapshot.
type GetPrintSettingsQueryHandler struct {
	settings CurrentPrintSettings
}

func NewGetPrintSettingsQueryHandler(settings CurrentPrintSettings) GetPrintSettingsQueryHandler {
	return GetPrintSettingsQueryHandler{settings: settings}
}

func (h GetPrintSettingsQueryHandler) Handle(ctx context.Context) (printsettings.Settings, error) {
	return h.settings.Current(ctx)
}

// GetNotificationSettingsQueryHandler returns the order status notification settings.
type GetNotificationSettingsQueryHandler struct {
	settings EffectiveNotificationSettings
}

func NewGetNotificationSettingsQueryHandler(settings EffectiveNotificationSettings) GetNotificationSettingsQueryHandler {
	return GetNotificationSettingsQueryHandler{settings: settings}
}

func (h GetNotificationSettingsQueryHandler) Handle(ctx context.Context) (notification.Settings, error) {
	return h.settings.Effective(ctx)
}
