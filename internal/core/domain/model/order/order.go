package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the fulfillment pipeline. Order entry and
// editing happen elsewhere; this aggregate only carries what fulfillment
// needs to read, and the only state it changes is its status.
//
// Order follows these invariants:
//   - Must have a non-nil identifier and a positive order number
//   - Type, source and status must be known values
//   - Status changes only along the edges of the Status state machine
//   - Can only be created through the NewOrder constructor
type Order struct {
	id              uuid.UUID
	number          int64
	orderType       Type
	source          Source
	status          Status
	customerID      *uuid.UUID
	customer        *Customer
	recipient       *Recipient
	deliveryAddress kernel.Address
	deliveryDate    *time.Time
	deliveryTime    string
	cardMessage     string
	items           []Item
	deliveryFee     kernel.Money
	tax             kernel.Money
	discount        kernel.Money
	paymentAmount   kernel.Money
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// Attributes carries everything needed to build an Order, either when it is
// loaded from storage or in tests.
//
// Customer may be nil even when CustomerID is set: the customer row can be
// gone while the order still references it.
type Attributes struct {
	ID              uuid.UUID
	Number          int64
	Type            Type
	Source          Source
	Status          Status
	CustomerID      *uuid.UUID
	Customer        *Customer
	Recipient       *Recipient
	DeliveryAddress kernel.Address
	DeliveryDate    *time.Time
	DeliveryTime    string
	CardMessage     string
	Items           []Item
	DeliveryFee     kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	PaymentAmount   kernel.Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder builds a validated Order. An empty Status defaults to DRAFT and
// an empty Source defaults to POS.
//
// Returns:
//   - *Order: the order if all attributes are valid
//   - error: the joined validation errors otherwise
//
// Example:
//
//	o, err := order.NewOrder(order.Attributes{
//	    ID:     uuid.New(),
//	    Number: 1042,
//	    Type:   order.Delivery,
//	    Status: order.Paid,
//	})
func NewOrder(attrs Attributes) (*Order, error) {
	if attrs.Status == "" {
		attrs.Status = Draft
	}
	if attrs.Source == "" {
		attrs.Source = SourcePOS
	}

	var idErr, numberErr error
	if attrs.ID == uuid.Nil {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if attrs.Number <= 0 {
		numberErr = errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%d is not greater than 0", attrs.Number))
	}

	if err := errors.Join(
		idErr,
		numberErr,
		attrs.Type.Validate(),
		attrs.Source.Validate(),
		attrs.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:              attrs.ID,
		number:          attrs.Number,
		orderType:       attrs.Type,
		source:          attrs.Source,
		status:          attrs.Status,
		customerID:      attrs.CustomerID,
		customer:        attrs.Customer,
		recipient:       attrs.Recipient,
		deliveryAddress: attrs.DeliveryAddress,
		deliveryDate:    attrs.DeliveryDate,
		deliveryTime:    attrs.DeliveryTime,
		cardMessage:     attrs.CardMessage,
		items:           append([]Item(nil), attrs.Items...),
		deliveryFee:     attrs.DeliveryFee,
		tax:             attrs.Tax,
		discount:        attrs.Discount,
		paymentAmount:   attrs.PaymentAmount,
		createdAt:       attrs.CreatedAt,
		updatedAt:       attrs.UpdatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was built by NewOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() uuid.UUID {
	return o.id
}

func (o *Order) Number() int64 {
	return o.number
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Source() Source {
	return o.source
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) IsPickup() bool {
	return o.orderType == Pickup
}

// CustomerID returns the referenced customer id, if any.
func (o *Order) CustomerID() *uuid.UUID {
	return o.customerID
}

// Customer returns the customer record, or nil when it is missing.
func (o *Order) Customer() *Customer {
	return o.customer
}

// Recipient returns the delivery recipient, or nil for orders without one.
func (o *Order) Recipient() *Recipient {
	return o.recipient
}

// DeliveryAddress returns the order-level delivery address. When it is empty
// the recipient's address is used.
func (o *Order) DeliveryAddress() kernel.Address {
	if o.deliveryAddress.IsEmpty() && o.recipient != nil {
		return o.recipient.Address
	}
	return o.deliveryAddress
}

func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

func (o *Order) DeliveryTime() string {
	return o.deliveryTime
}

func (o *Order) CardMessage() string {
	return o.cardMessage
}

// Items returns a copy of the item lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

func (o *Order) Tax() kernel.Money {
	return o.tax
}

func (o *Order) Discount() kernel.Money {
	return o.discount
}

func (o *Order) PaymentAmount() kernel.Money {
	return o.paymentAmount
}

// Subtotal is the sum of all item row totals.
func (o *Order) Subtotal() kernel.Money {
	var total kernel.Money
	for _, item := range o.items {
		total = total.Add(item.RowTotal)
	}
	return total
}

// Total is the captured payment amount when one exists, otherwise
// subtotal + delivery fee + tax - discount.
func (o *Order) Total() kernel.Money {
	if o.paymentAmount.IsPositive() {
		return o.paymentAmount
	}
	return o.Subtotal().Add(o.deliveryFee).Add(o.tax).Sub(o.discount)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// NextStatuses returns the statuses this order may move to.
func (o *Order) NextStatuses() []Status {
	return o.status.NextStatuses(o.orderType)
}

// ChangeStatus moves the order to the requested status.
//
// Only status and updatedAt change. On error the order is left untouched.
//
// Returns:
//   - the status the order had before the change
//   - InvalidTransitionError when the edge is not allowed for this order
//   - ValueIsInvalidError when the requested status is unknown
func (o *Order) ChangeStatus(to Status, at time.Time) (Status, error) {
	next, err := o.status.TransitionTo(to, o.orderType)
	if err != nil {
		return "", err
	}

	previous := o.status
	o.status = next
	o.updatedAt = at
	return previous, nil
}
