package http

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type TransitionErrorResponse struct {
	Error              string   `json:"error"`
	AllowedTransitions []string `json:"allowedTransitions"`
}

type ChangeOrderStatusRequest struct {
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	EmployeeId string `json:"employeeId"`
}

type QueuePrintJobRequest struct {
	Type     string     `json:"type"`
	OrderId  *uuid.UUID `json:"orderId"`
	Template string     `json:"template"`
	Priority *int       `json:"priority"`
}

type UpdatePrintJobStatusRequest struct {
	Status       string `json:"status"`
	AgentId      string `json:"agentId"`
	ErrorMessage string `json:"errorMessage"`
}

type PrintTypeConfig struct {
	Enabled     bool    `json:"enabled"`
	Destination string  `json:"destination"`
	Copies      int     `json:"copies"`
	PrinterName *string `json:"printerName"`
	PrinterTray *string `json:"printerTray"`
}

type PrintSettingsUpdate struct {
	Settings map[string]PrintTypeConfig `json:"settings"`
}

type PrintSettings struct {
	Settings  map[string]PrintTypeConfig `json:"settings"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

type OrderCustomer struct {
	Id        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
}

type OrderSummary struct {
	Id          uuid.UUID      `json:"id"`
	OrderNumber int64          `json:"orderNumber"`
	Status      string         `json:"status"`
	Type        string         `json:"type"`
	Customer    *OrderCustomer `json:"customer"`
}

type ChangeOrderStatusResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	Order          OrderSummary `json:"order"`
	PreviousStatus string       `json:"previousStatus"`
}

type NextStatuses struct {
	CurrentStatus string   `json:"currentStatus"`
	OrderType     string   `json:"orderType"`
	NextStatuses  []string `json:"nextStatuses"`
}

type RoutingResult struct {
	Action    string     `json:"action"`
	Type      string     `json:"type"`
	Reason    string     `json:"reason,omitempty"`
	Url       string     `json:"url,omitempty"`
	Copies    int        `json:"copies,omitempty"`
	JobId     *uuid.UUID `json:"jobId,omitempty"`
	AgentType string     `json:"agentType,omitempty"`
	Format    string     `json:"format,omitempty"`
}

type OrderContext struct {
	OrderNumber   int64   `json:"orderNumber"`
	Status        string  `json:"status"`
	Type          string  `json:"type"`
	CustomerName  string  `json:"customerName,omitempty"`
	RecipientName string  `json:"recipientName,omitempty"`
	DeliveryDate  *string `json:"deliveryDate"`
	DeliveryTime  string  `json:"deliveryTime,omitempty"`
	CardMessage   string  `json:"cardMessage,omitempty"`
}

type PrintJob struct {
	Id           uuid.UUID        `json:"id"`
	Type         string           `json:"type"`
	OrderId      *uuid.UUID       `json:"orderId"`
	AgentType    string           `json:"agentType"`
	PrinterName  string           `json:"printerName,omitempty"`
	PrinterTray  string           `json:"printerTray,omitempty"`
	Copies       int              `json:"copies"`
	Payload      printjob.Payload `json:"payload"`
	Template     string           `json:"template"`
	Priority     int              `json:"priority"`
	Status       string           `json:"status"`
	AgentId      string           `json:"agentId,omitempty"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	PrintedAt    *time.Time       `json:"printedAt"`
	Order        *OrderContext    `json:"order,omitempty"`
}

type PrintJobList struct {
	Jobs []PrintJob `json:"jobs"`
}

type PrintJobEnvelope struct {
	Success bool     `json:"success"`
	Job     PrintJob `json:"job"`
}

type PrintJobStats struct {
	FailedCount       int64 `json:"failedCount"`
	StuckPendingCount int64 `json:"stuckPendingCount"`
	TotalIssues       int64 `json:"totalIssues"`
}

func toOrderSummary(o *order.Order) OrderSummary {
	summary := OrderSummary{
		Id:          o.ID(),
		OrderNumber: o.Number(),
		Status:      o.Status().String(),
		Type:        o.Type().String(),
	}
	if c := o.Customer(); c != nil {
		summary.Customer = &OrderCustomer{
			Id:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
		}
	}
	return summary
}

func toRoutingResult(r services.RoutingResult) RoutingResult {
	out := RoutingResult{
		Action: string(r.Action),
		Type:   r.DocumentType.String(),
		Reason: r.Reason,
		Url:    r.URL,
		Copies: r.Copies,
	}
	if r.JobID != uuid.Nil {
		id := r.JobID
		out.JobId = &id
	}
	if r.AgentType != "" {
		out.AgentType = r.AgentType.String()
	}
	if r.Action == services.ActionQueued || r.Format != printjob.FormatNone {
		out.Format = r.Format.String()
	}
	return out
}

func toPrintJob(job *printjob.PrintJob) PrintJob {
	return PrintJob{
		Id:           job.ID(),
		Type:         job.DocumentType().String(),
		OrderId:      job.OrderID(),
		AgentType:    job.AgentType().String(),
		PrinterName:  job.PrinterName(),
		PrinterTray:  job.PrinterTray(),
		Copies:       job.Copies(),
		Payload:      job.Payload(),
		Template:     job.TemplateID(),
		Priority:     job.Priority(),
		Status:       job.Status().String(),
		AgentId:      job.AgentID(),
		ErrorMessage: job.ErrorMessage(),
		CreatedAt:    job.CreatedAt(),
		UpdatedAt:    job.UpdatedAt(),
		PrintedAt:    job.PrintedAt(),
	}
}

func toPrintJobList(rows []queries.PrintJobResponse) PrintJobList {
	jobs := make([]PrintJob, 0, len(rows))
	for _, row := range rows {
		view := toPrintJob(row.Job)
		if oc := row.Order; oc != nil {
			view.Order = &OrderContext{
				OrderNumber:   oc.OrderNumber,
				Status:        oc.Status.String(),
				Type:          oc.Type.String(),
				CustomerName:  oc.CustomerName,
				RecipientName: oc.RecipientName,
				DeliveryTime:  oc.DeliveryTime,
				CardMessage:   oc.CardMessage,
			}
			if oc.DeliveryDate != nil {
				date := oc.DeliveryDate.Format(time.DateOnly)
				view.Order.DeliveryDate = &date
			}
		}
		jobs = append(jobs, view)
	}
	return PrintJobList{Jobs: jobs}
}

func toPrintSettings(s printsettings.Settings) PrintSettings {
	configs := s.Configs()
	out := PrintSettings{
		Settings:  make(map[string]PrintTypeConfig, len(configs)),
		UpdatedAt: s.UpdatedAt(),
	}
	for t, cfg := range configs {
		view := PrintTypeConfig{
			Enabled:     cfg.Enabled,
			Destination: cfg.Destination.String(),
			Copies:      cfg.Copies,
		}
		if cfg.PrinterName != "" {
			view.PrinterName = &cfg.PrinterName
		}
		if cfg.PrinterTray != "" {
			view.PrinterTray = &cfg.PrinterTray
		}
		out.Settings[t.String()] = view
	}
	return out
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
