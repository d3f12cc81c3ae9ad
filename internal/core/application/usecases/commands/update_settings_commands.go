package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdatePrintSettingsCommandIsNotConstructed = errors.New(
		"UpdatePrintSettingsCommand must be created via NewUpdatePrintSettingsCommand constructor",
	)
	ErrUpdateNotificationSettingsCommandIsNotConstructed = errors.New(
		"UpdateNotificationSettingsCommand must be created via NewUpdateNotificationSettingsCommand constructor",
	)
)

// PrintTypeSettings is the requested configuration of one document type.
type PrintTypeSettings struct {
	Enabled     bool
	Destination string
	Copies      int
	PrinterName string
	PrinterTray string
}

// UpdatePrintSettingsCommand replaces the configuration of the listed
// document types. Types that are not listed keep their configuration.
type UpdatePrintSettingsCommand struct {
	changes map[printjob.DocumentType]printsettings.TypeConfig

	guard guard.ConstructorGuard
}

// NewUpdatePrintSettingsCommand parses document types and destinations.
// Copies are clamped later by the settings themselves, so 0 or 7 are accepted.
func NewUpdatePrintSettingsCommand(requested map[string]PrintTypeSettings) (UpdatePrintSettingsCommand, error) {
	if len(requested) == 0 {
		return UpdatePrintSettingsCommand{}, errs.NewValueIsRequiredError("settings")
	}

	changes := make(map[printjob.DocumentType]printsettings.TypeConfig, len(requested))
	var parseErrs []error
	for rawType, cfg := range requested {
		t, err := printjob.ParseDocumentType(rawType)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}

		destination := printjob.Destination(cfg.Destination)
		if err = destination.Validate(); err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("%s: %w", t, err))
			continue
		}

		changes[t] = printsettings.TypeConfig{
			Enabled:     cfg.Enabled,
			Destination: destination,
			Copies:      cfg.Copies,
			PrinterName: cfg.PrinterName,
			PrinterTray: cfg.PrinterTray,
		}
	}

	if err := errors.Join(parseErrs...); err != nil {
		return UpdatePrintSettingsCommand{}, err
	}

	return UpdatePrintSettingsCommand{changes: changes, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePrintSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePrintSettingsCommandIsNotConstructed)
}

// Changes returns a copy of the requested per-type configs.
func (c UpdatePrintSettingsCommand) Changes() map[printjob.DocumentType]printsettings.TypeConfig {
	out := make(map[printjob.DocumentType]printsettings.TypeConfig, len(c.changes))
	for t, cfg := range c.changes {
		out[t] = cfg
	}
	return out
}

// UpdateNotificationSettingsCommand replaces the order status notification settings.
type UpdateNotificationSettingsCommand struct {
	settings notification.Settings

	guard guard.ConstructorGuard
}

func NewUpdateNotificationSettingsCommand(settings notification.Settings) (UpdateNotificationSettingsCommand, error) {
	if err := settings.Validate(); err != nil {
		return UpdateNotificationSettingsCommand{}, err
	}

	return UpdateNotificationSettingsCommand{settings: settings, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateNotificationSettingsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateNotificationSettingsCommandIsNotConstructed)
}

func (c UpdateNotificationSettingsCommand) Settings() notification.Settings {
	return c.settings
}
