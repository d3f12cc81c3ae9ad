package document_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

func TestForOrder(t *testing.T) {
	deliveryDate := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	issuedAt := time.Date(2026, 2, 13, 16, 45, 0, 0, time.UTC)
	o, err := order.NewOrder(order.Attributes{
		ID:     uuid.New(),
		Number: 1042,
		Type:   order.Delivery,
		Status: order.Paid,
		Customer: &order.Customer{
			FirstName: "Jane", LastName: "Doe", Phone: "+15550001",
		},
		Recipient: &order.Recipient{
			FirstName: "Ann", LastName: "Lee", Phone: "+15550002",
			Address: kernel.Address{Line1: "5 Elm St", City: "Springfield", Province: "IL"},
		},
		DeliveryDate: &deliveryDate,
		DeliveryTime: "AM",
		CardMessage:  "Happy Valentine's",
		Items: []order.Item{
			{Description: "Dozen Roses", Quantity: 1, UnitPrice: kernel.NewMoney(6500), RowTotal: kernel.NewMoney(6500)},
		},
		DeliveryFee: kernel.NewMoney(1200),
	})
	require.NoError(t, err)

	doc := document.ForOrder(printjob.OrderTicket, o, document.Store{Name: "Bloom", OrderNumberPrefix: "B-"}, issuedAt)

	assert.Equal(t, "Order Ticket", doc.Title)
	assert.Equal(t, "B-1042", doc.OrderNumber)
	assert.Equal(t, "Jane Doe", doc.CustomerName)
	assert.Equal(t, "Ann Lee", doc.RecipientName)
	assert.Equal(t, []string{"5 Elm St", "Springfield, IL"}, doc.DeliveryAddress)
	assert.Equal(t, "Feb 14, 2026", doc.DeliveryDate)
	assert.Len(t, doc.Lines, 1)
	assert.Equal(t, int64(7700), doc.Total.Cents())
	assert.Equal(t, issuedAt, doc.IssuedAt)
}

func TestForOrder_MissingCustomer(t *testing.T) {
	o, err := order.NewOrder(order.Attributes{ID: uuid.New(), Number: 9, Type: order.Pickup})
	require.NoError(t, err)

	doc := document.ForOrder(printjob.Receipt, o, document.Store{}, time.Now())

	assert.Equal(t, "Receipt", doc.Title)
	assert.Equal(t, "9", doc.OrderNumber)
	assert.Empty(t, doc.CustomerName)
	assert.Empty(t, doc.DeliveryAddress)
}

func TestStandalone(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	doc := document.Standalone(printjob.Report, document.Store{Name: "Bloom"}, issuedAt)

	assert.Equal(t, "Report", doc.Title)
	assert.Empty(t, doc.OrderNumber)
	assert.Equal(t, "Bloom", doc.Store.Name)
	assert.Equal(t, issuedAt, doc.IssuedAt)
}
