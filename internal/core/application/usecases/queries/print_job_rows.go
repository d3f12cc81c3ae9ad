package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/adapters/out/postgres/printjobrepo"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

// PrintJobResponse is a job as returned to agents and the back office.
// Order is set when the job belongs to an order that still exists.
type PrintJobResponse struct {
	Job   *printjob.PrintJob
	Order *OrderContext
}

// OrderContext is the part of an order a printer agent shows next to a job.
type OrderContext struct {
	OrderNumber   int64
	Status        order.Status
	Type          order.Type
	CustomerName  string
	RecipientName string
	DeliveryDate  *time.Time
	DeliveryTime  string
	CardMessage   string
}

const printJobColumns = `
	pj.id, pj.document_type, pj.order_id, pj.payload_format, pj.payload,
	pj.agent_type, pj.printer_name, pj.printer_tray, pj.copies, pj.priority,
	pj.template_id, pj.status, pj.agent_id, pj.error_message,
	pj.created_at, pj.updated_at, pj.printed_at`

const orderContextColumns = `
	o.order_number, o.status, o.type,
	c.first_name, c.last_name, r.first_name, r.last_name,
	o.delivery_date, o.delivery_time, o.card_message`

const orderContextJoins = `
	LEFT JOIN orders o ON o.id = pj.order_id
	LEFT JOIN customers c ON c.id = o.customer_id
	LEFT JOIN recipients r ON r.id = o.recipient_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrintJobWithOrder(rows rowScanner) (PrintJobResponse, error) {
	var (
		dto            printjobrepo.PrintJobDTO
		orderID        uuid.NullUUID
		printedAt      sql.NullTime
		orderNumber    sql.NullInt64
		orderStatus    sql.NullString
		orderType      sql.NullString
		customerFirst  sql.NullString
		customerLast   sql.NullString
		recipientFirst sql.NullString
		recipientLast  sql.NullString
		deliveryDate   sql.NullTime
		deliveryTime   sql.NullString
		cardMessage    sql.NullString
	)

	err := rows.Scan(
		&dto.ID, &dto.DocumentType, &orderID, &dto.PayloadFormat, &dto.Payload,
		&dto.AgentType, &dto.PrinterName, &dto.PrinterTray, &dto.Copies, &dto.Priority,
		&dto.TemplateID, &dto.Status, &dto.AgentID, &dto.ErrorMessage,
		&dto.CreatedAt, &dto.UpdatedAt, &printedAt,
		&orderNumber, &orderStatus, &orderType,
		&customerFirst, &customerLast, &recipientFirst, &recipientLast,
		&deliveryDate, &deliveryTime, &cardMessage,
	)
	if err != nil {
		return PrintJobResponse{}, err
	}

	if orderID.Valid {
		id := orderID.UUID
		dto.OrderID = &id
	}
	if printedAt.Valid {
		at := printedAt.Time
		dto.PrintedAt = &at
	}

	job, err := printjobrepo.ToDomain(dto)
	if err != nil {
		return PrintJobResponse{}, err
	}

	resp := PrintJobResponse{Job: job}
	if orderNumber.Valid {
		ctx := &OrderContext{
			OrderNumber:   orderNumber.Int64,
			Status:        order.Status(orderStatus.String),
			Type:          order.Type(orderType.String),
			CustomerName:  joinName(customerFirst.String, customerLast.String),
			RecipientName: joinName(recipientFirst.String, recipientLast.String),
			DeliveryTime:  deliveryTime.String,
			CardMessage:   cardMessage.String,
		}
		if deliveryDate.Valid {
			d := deliveryDate.Time
			ctx.DeliveryDate = &d
		}
		resp.Order = ctx
	}

	return resp, nil
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
