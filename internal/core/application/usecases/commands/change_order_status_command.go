package commands

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests moving an order to another status.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, "IN_DESIGN", "emp-17", "started arrangement")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID uuid.UUID
	status  order.Status
	actorID string
	notes   string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the order id and the requested status.
// Whether the status is reachable from the current one is decided by the handler.
func NewChangeOrderStatusCommand(orderID uuid.UUID, status, actorID, notes string) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		actorID: strings.TrimSpace(actorID),
		notes:   strings.TrimSpace(notes),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() uuid.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

// ActorID identifies the employee who requested the change. May be empty.
func (c ChangeOrderStatusCommand) ActorID() string {
	return c.actorID
}

func (c ChangeOrderStatusCommand) Notes() string {
	return c.notes
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return errs.NewValueIsRequiredError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return err
	}

	c.status = parsed
	return nil
}
