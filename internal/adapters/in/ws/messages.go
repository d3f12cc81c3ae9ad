package ws

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/printjob"
)

// Message types on the agent channel.
const (
	TypePrintJob     = "PRINT_JOB"
	TypeJobStatus    = "JOB_STATUS"
	TypeHeartbeat    = "HEARTBEAT"
	TypeHeartbeatAck = "HEARTBEAT_ACK"
	TypeAck          = "ACK"
	TypeError        = "ERROR"
)

// JobView is the job as agents see it.
type JobView struct {
	ID          uuid.UUID        `json:"id"`
	Type        string           `json:"type"`
	OrderID     *uuid.UUID       `json:"orderId"`
	AgentType   string           `json:"agentType"`
	PrinterName string           `json:"printerName,omitempty"`
	PrinterTray string           `json:"printerTray,omitempty"`
	Copies      int              `json:"copies"`
	Payload     printjob.Payload `json:"payload"`
	Template    string           `json:"template"`
	Priority    int              `json:"priority"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewJobView(job *printjob.PrintJob) JobView {
	return JobView{
		ID:          job.ID(),
		Type:        job.DocumentType().String(),
		OrderID:     job.OrderID(),
		AgentType:   job.AgentType().String(),
		PrinterName: job.PrinterName(),
		PrinterTray: job.PrinterTray(),
		Copies:      job.Copies(),
		Payload:     job.Payload(),
		Template:    job.TemplateID(),
		Priority:    job.Priority(),
		CreatedAt:   job.CreatedAt(),
	}
}

type outbound struct {
	Type    string     `json:"type"`
	Job     *JobView   `json:"job,omitempty"`
	JobID   *uuid.UUID `json:"jobId,omitempty"`
	Status  string     `json:"status,omitempty"`
	Message string     `json:"message,omitempty"`
}

type inbound struct {
	Type         string    `json:"type"`
	JobID        uuid.UUID `json:"jobId"`
	Status       string    `json:"status"`
	AgentID      string    `json:"agentId"`
	ErrorMessage string    `json:"errorMessage"`
}
