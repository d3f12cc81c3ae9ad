package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/printsettings"
)

type UpdatePrintSettingsCommandHandler struct {
	settings PrintSettingsUpdater
}

func NewUpdatePrintSettingsCommandHandler(settings PrintSettingsUpdater) UpdatePrintSettingsCommandHandler {
	return UpdatePrintSettingsCommandHandler{settings: settings}
}

// Handle returns the settings as stored, with copies clamped and printer
// names normalized. Concurrent updates are last-writer-wins.
func (h UpdatePrintSettingsCommandHandler) Handle(ctx context.Context, cmd UpdatePrintSettingsCommand) (printsettings.Settings, error) {
	if err := cmd.Validate(); err != nil {
		return printsettings.Settings{}, err
	}

	return h.settings.Update(ctx, cmd.Changes())
}

type UpdateNotificationSettingsCommandHandler struct {
	settings NotificationSettingsUpdater
}

func NewUpdateNotificationSettingsCommandHandler(settings NotificationSettingsUpdater) UpdateNotificationSettingsCommandHandler {
	return UpdateNotificationSettingsCommandHandler{settings: settings}
}

func (h UpdateNotificationSettingsCommandHandler) Handle(ctx context.Context, cmd UpdateNotificationSettingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.settings.Update(ctx, cmd.Settings())
}
