// Package settingsrepo stores the print settings singleton and the
// notification settings documents as JSONB rows.
package settingsrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
)

// printSettingsRowID is the primary key of the only print_settings row.
const printSettingsRowID = 1

// PrintSettingsDTO is the single row of the print_settings table.
type PrintSettingsDTO struct {
	ID        int                      `gorm:"primaryKey;autoIncrement:false"`
	Configs   map[string]TypeConfigDTO `gorm:"type:jsonb;serializer:json;not null"`
	UpdatedAt time.Time                `gorm:"autoUpdateTime:false"`
}

func (PrintSettingsDTO) TableName() string {
	return "print_settings"
}

// TypeConfigDTO is the JSON form of one document type's configuration.
type TypeConfigDTO struct {
	Enabled     bool   `json:"enabled"`
	Destination string `json:"destination"`
	Copies      int    `json:"copies"`
	PrinterName string `json:"printerName,omitempty"`
	PrinterTray string `json:"printerTray,omitempty"`
}

func printSettingsFromDomain(s printsettings.Settings) PrintSettingsDTO {
	configs := make(map[string]TypeConfigDTO, len(printjob.AllDocumentTypes()))
	for t, cfg := range s.Configs() {
		configs[string(t)] = TypeConfigDTO{
			Enabled:     cfg.Enabled,
			Destination: string(cfg.Destination),
			Copies:      cfg.Copies,
			PrinterName: cfg.PrinterName,
			PrinterTray: cfg.PrinterTray,
		}
	}

	return PrintSettingsDTO{
		ID:        printSettingsRowID,
		Configs:   configs,
		UpdatedAt: s.UpdatedAt(),
	}
}

// printSettingsToDomain ignores document types this version does not know,
// so rows written by a newer release still load.
func printSettingsToDomain(dto PrintSettingsDTO) (printsettings.Settings, error) {
	configs := make(map[printjob.DocumentType]printsettings.TypeConfig, len(dto.Configs))
	for rawType, cfg := range dto.Configs {
		t := printjob.DocumentType(rawType)
		if t.Validate() != nil {
			continue
		}
		configs[t] = printsettings.TypeConfig{
			Enabled:     cfg.Enabled,
			Destination: printjob.Destination(cfg.Destination),
			Copies:      cfg.Copies,
			PrinterName: cfg.PrinterName,
			PrinterTray: cfg.PrinterTray,
		}
	}

	return printsettings.New(configs, dto.UpdatedAt)
}

// NotificationSettingsDTO is a row of the notification_settings table.
type NotificationSettingsDTO struct {
	Family    string                `gorm:"size:32;primaryKey"`
	Settings  notification.Settings `gorm:"type:jsonb;serializer:json;not null"`
	UpdatedAt time.Time
}

func (NotificationSettingsDTO) TableName() string {
	return "notification_settings"
}
