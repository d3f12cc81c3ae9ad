package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/ports"
)

type notificationSnapshot struct {
	settings notification.Settings
	stored   bool
}

// NotificationSettingsProvider serves the order status notification settings
// from an atomic snapshot, like PrintSettingsProvider. Unlike print settings
// nothing is created on read: when no row exists the dispatcher stays silent
// and readers of Effective get the factory defaults.
type NotificationSettingsProvider struct {
	repo     ports.NotificationSettingsRepository
	logger   *slog.Logger
	snapshot atomic.Pointer[notificationSnapshot]
	group    singleflight.Group
}

func NewNotificationSettingsProvider(repo ports.NotificationSettingsRepository, logger *slog.Logger) *NotificationSettingsProvider {
	return &NotificationSettingsProvider{
		repo:   repo,
		logger: logger.With("component", "notification_settings_provider"),
	}
}

// Stored returns the saved settings and whether any have been saved.
func (p *NotificationSettingsProvider) Stored(ctx context.Context) (notification.Settings, bool, error) {
	if s := p.snapshot.Load(); s != nil {
		return s.settings, s.stored, nil
	}

	s, err := p.load(ctx)
	if err != nil {
		return notification.Settings{}, false, err
	}
	return s.settings, s.stored, nil
}

// Effective returns the saved settings, or the factory defaults when none
// have been saved.
func (p *NotificationSettingsProvider) Effective(ctx context.Context) (notification.Settings, error) {
	s, stored, err := p.Stored(ctx)
	if err != nil {
		return notification.Settings{}, err
	}
	if !stored {
		return notification.DefaultSettings()
	}
	return s, nil
}

// Refresh reloads the settings from storage.
func (p *NotificationSettingsProvider) Refresh(ctx context.Context) error {
	_, err := p.load(ctx)
	return err
}

// Update validates and saves the settings, then publishes them as the new snapshot.
func (p *NotificationSettingsProvider) Update(ctx context.Context, settings notification.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := p.repo.Save(ctx, notification.OrderStatus, settings); err != nil {
		return err
	}

	p.snapshot.Store(&notificationSnapshot{settings: settings, stored: true})
	p.logger.InfoContext(ctx, "Notification settings updated", "rules", len(settings.StatusNotifications))
	return nil
}

func (p *NotificationSettingsProvider) load(ctx context.Context) (*notificationSnapshot, error) {
	v, err, _ := p.group.Do(string(notification.OrderStatus), func() (any, error) {
		settings, stored, err := p.repo.Get(ctx, notification.OrderStatus)
		if err != nil {
			return nil, err
		}
		s := &notificationSnapshot{settings: settings, stored: stored}
		p.snapshot.Store(s)
		return s, nil
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to load notification settings", "error", err)
		return nil, err
	}
	return v.(*notificationSnapshot), nil
}
