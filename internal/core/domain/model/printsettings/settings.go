package printsettings

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/printjob"
)

const (
	MinCopies = 1
	MaxCopies = 3
)

// TypeConfig is the routing configuration of one document type.
type TypeConfig struct {
	Enabled     bool
	Destination printjob.Destination
	Copies      int
	PrinterName string
	PrinterTray string
}

// HasPrinter reports whether a specific printer is configured.
func (c TypeConfig) HasPrinter() bool {
	return c.PrinterName != ""
}

// Normalize clamps copies into [MinCopies, MaxCopies] and trims printer
// name and tray; a blank printer name means "unset".
func (c TypeConfig) Normalize() TypeConfig {
	c.Copies = ClampCopies(c.Copies)
	c.PrinterName = strings.TrimSpace(c.PrinterName)
	c.PrinterTray = strings.TrimSpace(c.PrinterTray)
	return c
}

// Validate checks the destination.
func (c TypeConfig) Validate() error {
	return c.Destination.Validate()
}

// ClampCopies forces a requested copy count into [MinCopies, MaxCopies].
func ClampCopies(copies int) int {
	return min(max(copies, MinCopies), MaxCopies)
}

// Settings is the shop-wide print configuration, one TypeConfig per document type.
// It is a value: update operations return a new Settings.
type Settings struct {
	configs   map[printjob.DocumentType]TypeConfig
	updatedAt time.Time
}

// DefaultTypeConfig returns the factory configuration of a document type.
func DefaultTypeConfig(t printjob.DocumentType) TypeConfig {
	destination := printjob.DocumentAgent
	switch t {
	case printjob.Receipt:
		destination = printjob.ThermalAgent
	case printjob.Report:
		destination = printjob.Browser
	}

	return TypeConfig{
		Enabled:     true,
		Destination: destination,
		Copies:      1,
	}
}

// Defaults returns the settings a fresh installation starts with:
// receipts on the thermal agent, reports in the browser, everything else
// on the document agent.
func Defaults() Settings {
	configs := make(map[printjob.DocumentType]TypeConfig, len(printjob.AllDocumentTypes()))
	for _, t := range printjob.AllDocumentTypes() {
		configs[t] = DefaultTypeConfig(t)
	}
	return Settings{configs: configs}
}

// New builds settings from per-type configs. Types missing from the map
// keep their default configuration. Every config is normalized.
func New(configs map[printjob.DocumentType]TypeConfig, updatedAt time.Time) (Settings, error) {
	settings := Defaults()
	settings.updatedAt = updatedAt

	var validationErrs []error
	for t, cfg := range configs {
		if err := t.Validate(); err != nil {
			validationErrs = append(validationErrs, err)
			continue
		}
		if err := cfg.Validate(); err != nil {
			validationErrs = append(validationErrs, err)
			continue
		}
		settings.configs[t] = cfg.Normalize()
	}

	if err := errors.Join(validationErrs...); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// ConfigFor returns the configuration of a document type, falling back to
// the default when the type has never been configured.
func (s Settings) ConfigFor(t printjob.DocumentType) TypeConfig {
	if cfg, ok := s.configs[t]; ok {
		return cfg
	}
	return DefaultTypeConfig(t)
}

// Configs returns a copy of all per-type configs.
func (s Settings) Configs() map[printjob.DocumentType]TypeConfig {
	out := make(map[printjob.DocumentType]TypeConfig, len(printjob.AllDocumentTypes()))
	for _, t := range printjob.AllDocumentTypes() {
		out[t] = s.ConfigFor(t)
	}
	return out
}

func (s Settings) UpdatedAt() time.Time {
	return s.updatedAt
}

// With returns a copy of s where the given types are replaced.
func (s Settings) With(changes map[printjob.DocumentType]TypeConfig, at time.Time) (Settings, error) {
	merged := s.Configs()
	for t, cfg := range changes {
		merged[t] = cfg
	}
	return New(merged, at)
}
