package commands

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrQueuePrintJobCommandIsNotConstructed = errors.New(
	"QueuePrintJobCommand must be created via NewQueuePrintJobCommand constructor",
)

// QueuePrintJobCommand asks for a document to be printed.
// OrderID is optional: reports are not tied to an order.
type QueuePrintJobCommand struct { //nolint:recvcheck //using for validation
	documentType printjob.DocumentType
	orderID      *uuid.UUID
	templateID   string
	priority     *int

	guard guard.ConstructorGuard
}

// NewQueuePrintJobCommand validates the document type and the optional
// priority. An empty template falls back to the type's default template.
func NewQueuePrintJobCommand(documentType string, orderID *uuid.UUID, templateID string, priority *int) (QueuePrintJobCommand, error) {
	cmd := QueuePrintJobCommand{
		templateID: strings.TrimSpace(templateID),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentType(documentType),
		cmd.setOrderID(orderID),
		cmd.setPriority(priority),
	); err != nil {
		return QueuePrintJobCommand{}, err
	}

	if cmd.templateID == "" {
		cmd.templateID = cmd.documentType.DefaultTemplate()
	}

	return cmd, nil
}

func (c QueuePrintJobCommand) Validate() error {
	return c.guard.Validate(ErrQueuePrintJobCommandIsNotConstructed)
}

func (c QueuePrintJobCommand) DocumentType() printjob.DocumentType {
	return c.documentType
}

func (c QueuePrintJobCommand) OrderID() *uuid.UUID {
	return c.orderID
}

func (c QueuePrintJobCommand) TemplateID() string {
	return c.templateID
}

// Priority is nil when the document type's default applies.
func (c QueuePrintJobCommand) Priority() *int {
	return c.priority
}

func (c *QueuePrintJobCommand) setDocumentType(documentType string) error {
	t, err := printjob.ParseDocumentType(strings.TrimSpace(documentType))
	if err != nil {
		return err
	}

	c.documentType = t
	return nil
}

func (c *QueuePrintJobCommand) setOrderID(orderID *uuid.UUID) error {
	if orderID != nil && *orderID == uuid.Nil {
		return errs.NewValueIsInvalidError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *QueuePrintJobCommand) setPriority(priority *int) error {
	if priority != nil && *priority < 0 {
		return errs.NewValueIsOutOfRangeError("priority", *priority, 0, "unbounded")
	}

	c.priority = priority
	return nil
}
