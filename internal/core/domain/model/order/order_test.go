package order_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func newTestOrder(t *testing.T, orderType order.Type, status order.Status) *order.Order {
	t.Helper()

	o, err := order.NewOrder(order.Attributes{
		ID:     uuid.New(),
		Number: 1042,
		Type:   orderType,
		Status: status,
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with defaults", func(t *testing.T) {
		id := uuid.New()
		o, err := order.NewOrder(order.Attributes{ID: id, Number: 7, Type: order.Pickup})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, id, o.ID())
		assert.Equal(t, int64(7), o.Number())
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, order.SourcePOS, o.Source())
		assert.True(t, o.IsPickup())
		assert.Nil(t, o.Customer())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		o, err := order.NewOrder(order.Attributes{Type: "BOAT", Status: "LOST"})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "type is invalid")
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

		var nilOrder *order.Order
		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Totals(t *testing.T) {
	o, err := order.NewOrder(order.Attributes{
		ID:     uuid.New(),
		Number: 1,
		Type:   order.Delivery,
		Items: []order.Item{
			{Description: "Roses", Quantity: 2, UnitPrice: kernel.NewMoney(2000), RowTotal: kernel.NewMoney(4000)},
			{Description: "Vase", Quantity: 1, UnitPrice: kernel.NewMoney(1500), RowTotal: kernel.NewMoney(1500)},
		},
		DeliveryFee: kernel.NewMoney(1000),
		Tax:         kernel.NewMoney(550),
		Discount:    kernel.NewMoney(500),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5500), o.Subtotal().Cents())
	assert.Equal(t, int64(6550), o.Total().Cents())
}

func TestOrder_TotalPrefersPaymentAmount(t *testing.T) {
	o, err := order.NewOrder(order.Attributes{
		ID:            uuid.New(),
		Number:        1,
		Type:          order.Pickup,
		Items:         []order.Item{{RowTotal: kernel.NewMoney(4000)}},
		PaymentAmount: kernel.NewMoney(4200),
	})
	require.NoError(t, err)

	assert.Equal(t, "42.00", o.Total().Dollars())
}

func TestOrder_DeliveryAddressFallsBackToRecipient(t *testing.T) {
	recipientAddress := kernel.Address{Line1: "5 Elm St", City: "Springfield"}
	o, err := order.NewOrder(order.Attributes{
		ID:        uuid.New(),
		Number:    1,
		Type:      order.Delivery,
		Recipient: &order.Recipient{FirstName: "Ann", Address: recipientAddress},
	})
	require.NoError(t, err)

	assert.Equal(t, recipientAddress, o.DeliveryAddress())
}

func TestOrder_ChangeStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	t.Run("should apply allowed transition", func(t *testing.T) {
		o := newTestOrder(t, order.Delivery, order.Paid)

		previous, err := o.ChangeStatus(order.InDesign, now)

		require.NoError(t, err)
		assert.Equal(t, order.Paid, previous)
		assert.Equal(t, order.InDesign, o.Status())
		assert.Equal(t, now, o.UpdatedAt())
	})

	t.Run("should leave status unchanged on invalid transition", func(t *testing.T) {
		o := newTestOrder(t, order.Delivery, order.Draft)

		_, err := o.ChangeStatus(order.Completed, now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Draft, o.Status())
		assert.True(t, o.UpdatedAt().IsZero())
	})

	t.Run("ready pickup order completes but never goes out for delivery", func(t *testing.T) {
		o := newTestOrder(t, order.Pickup, order.Ready)
		_, err := o.ChangeStatus(order.OutForDelivery, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())

		previous, err := o.ChangeStatus(order.Completed, now)
		require.NoError(t, err)
		assert.Equal(t, order.Ready, previous)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("next statuses follow the order type", func(t *testing.T) {
		assert.Equal(t, []order.Status{order.OutForDelivery, order.Completed, order.Cancelled},
			newTestOrder(t, order.Delivery, order.Ready).NextStatuses())
		assert.Equal(t, []order.Status{order.Completed, order.Cancelled},
			newTestOrder(t, order.Pickup, order.Ready).NextStatuses())
	})
}
