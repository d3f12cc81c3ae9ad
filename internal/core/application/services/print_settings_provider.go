package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

// PrintSettingsProvider serves the print settings from an in-memory snapshot.
//
// The first read loads (or creates) the stored row; concurrent first reads
// share one load. Refresh reloads from storage and Update writes through.
// Both replace the snapshot atomically, so readers never see a partial update.
type PrintSettingsProvider struct {
	repo     ports.PrintSettingsRepository
	clock    clock.Clock
	logger   *slog.Logger
	snapshot atomic.Pointer[printsettings.Settings]
	group    singleflight.Group
}

// NewPrintSettingsProvider creates a provider with an empty snapshot.
func NewPrintSettingsProvider(repo ports.PrintSettingsRepository, clk clock.Clock, logger *slog.Logger) *PrintSettingsProvider {
	return &PrintSettingsProvider{
		repo:   repo,
		clock:  clk,
		logger: logger.With("component", "print_settings_provider"),
	}
}

// Current returns the snapshot, loading it on first use.
func (p *PrintSettingsProvider) Current(ctx context.Context) (printsettings.Settings, error) {
	if s := p.snapshot.Load(); s != nil {
		return *s, nil
	}
	return p.load(ctx)
}

// ConfigFor returns the configuration of one document type.
func (p *PrintSettingsProvider) ConfigFor(ctx context.Context, t printjob.DocumentType) (printsettings.TypeConfig, error) {
	s, err := p.Current(ctx)
	if err != nil {
		return printsettings.TypeConfig{}, err
	}
	return s.ConfigFor(t), nil
}

// Refresh reloads the settings from storage.
func (p *PrintSettingsProvider) Refresh(ctx context.Context) error {
	_, err := p.load(ctx)
	return err
}

// Update merges the given per-type configs into the current settings, saves
// the result and publishes it as the new snapshot. Concurrent updates are
// last-writer-wins.
func (p *PrintSettingsProvider) Update(
	ctx context.Context,
	changes map[printjob.DocumentType]printsettings.TypeConfig,
) (printsettings.Settings, error) {
	current, err := p.Current(ctx)
	if err != nil {
		return printsettings.Settings{}, err
	}

	updated, err := current.With(changes, p.clock.Now())
	if err != nil {
		return printsettings.Settings{}, err
	}

	if err := p.repo.Save(ctx, updated); err != nil {
		return printsettings.Settings{}, err
	}

	p.snapshot.Store(&updated)
	p.logger.InfoContext(ctx, "Print settings updated")
	return updated, nil
}

func (p *PrintSettingsProvider) load(ctx context.Context) (printsettings.Settings, error) {
	v, err, _ := p.group.Do("print-settings", func() (any, error) {
		s, err := p.repo.GetOrCreate(ctx, printsettings.Defaults())
		if err != nil {
			return nil, err
		}
		p.snapshot.Store(&s)
		return s, nil
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to load print settings", "error", err)
		return printsettings.Settings{}, err
	}
	return v.(printsettings.Settings), nil
}
