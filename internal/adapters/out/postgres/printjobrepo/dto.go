// Package printjobrepo persists print jobs in the print_jobs table.
package printjobrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/printjob"
)

// PrintJobDTO is a row of the print_jobs table. The payload is kept in its
// storage form: base64 for binary formats, JSON text for structured.
type PrintJobDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DocumentType  string     `gorm:"size:32;not null"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	PayloadFormat string     `gorm:"size:16"`
	Payload       string     `gorm:"type:text"`
	AgentType     string     `gorm:"size:32;not null"`
	PrinterName   string
	PrinterTray   string
	Copies        int
	Priority      int    `gorm:"index:idx_print_jobs_queue,priority:2,sort:desc"`
	TemplateID    string `gorm:"size:64"`
	Status        string `gorm:"size:16;not null;index:idx_print_jobs_queue,priority:1"`
	AgentID       string
	ErrorMessage  string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false;index:idx_print_jobs_queue,priority:3"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
	PrintedAt     *time.Time
}

func (PrintJobDTO) TableName() string {
	return "print_jobs"
}

func fromDomain(job *printjob.PrintJob) PrintJobDTO {
	s := job.Snapshot()
	return PrintJobDTO{
		ID:            s.ID,
		DocumentType:  string(s.DocumentType),
		OrderID:       s.OrderID,
		PayloadFormat: string(s.Payload.Format()),
		Payload:       s.Payload.Encode(),
		AgentType:     string(s.AgentType),
		PrinterName:   s.PrinterName,
		PrinterTray:   s.PrinterTray,
		Copies:        s.Copies,
		Priority:      s.Priority,
		TemplateID:    s.TemplateID,
		Status:        string(s.Status),
		AgentID:       s.AgentID,
		ErrorMessage:  s.ErrorMessage,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		PrintedAt:     s.PrintedAt,
	}
}

// ToDomain restores a job from its row. Exported for the read models that
// select jobs with raw SQL.
func ToDomain(dto PrintJobDTO) (*printjob.PrintJob, error) {
	payload, err := printjob.DecodePayload(printjob.Format(dto.PayloadFormat), dto.Payload)
	if err != nil {
		return nil, err
	}

	return printjob.RestorePrintJob(printjob.Snapshot{
		ID:           dto.ID,
		DocumentType: printjob.DocumentType(dto.DocumentType),
		OrderID:      dto.OrderID,
		Payload:      payload,
		AgentType:    printjob.Destination(dto.AgentType),
		PrinterName:  dto.PrinterName,
		PrinterTray:  dto.PrinterTray,
		Copies:       dto.Copies,
		Priority:     dto.Priority,
		TemplateID:   dto.TemplateID,
		Status:       printjob.Status(dto.Status),
		AgentID:      dto.AgentID,
		ErrorMessage: dto.ErrorMessage,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		PrintedAt:    dto.PrintedAt,
	})
}
