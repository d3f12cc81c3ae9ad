package document

import (
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

// Store is the shop profile printed in document headers.
type Store struct {
	Name              string
	Phone             string
	Address           string
	OrderNumberPrefix string
}

// Line is one printed item row.
type Line struct {
	Description string
	Quantity    int
	UnitPrice   kernel.Money
	RowTotal    kernel.Money
}

// Document is the renderer-neutral model of a printable document. Renderers
// turn it into PDF, ESC/POS or structured JSON.
type Document struct {
	Type            printjob.DocumentType
	Title           string
	OrderNumber     string
	OrderType       order.Type
	IssuedAt        time.Time
	Store           Store
	CustomerName    string
	CustomerPhone   string
	RecipientName   string
	RecipientPhone  string
	DeliveryAddress []string
	DeliveryDate    string
	DeliveryTime    string
	CardMessage     string
	Lines           []Line
	Subtotal        kernel.Money
	DeliveryFee     kernel.Money
	Tax             kernel.Money
	Discount        kernel.Money
	Total           kernel.Money
}

// DateLayout is how delivery dates are printed and sent in messages.
const DateLayout = "Jan 2, 2006"

// Title returns the heading printed on a document type.
func Title(t printjob.DocumentType) string {
	switch t {
	case printjob.Receipt:
		return "Receipt"
	case printjob.OrderTicket:
		return "Order Ticket"
	case printjob.Label:
		return "Delivery Label"
	default:
		return "Report"
	}
}

// FormatOrderNumber prepends the shop prefix to an order number.
func FormatOrderNumber(number int64, prefix string) string {
	return prefix + strconv.FormatInt(number, 10)
}

// ForOrder builds the document of the given type for an order.
func ForOrder(t printjob.DocumentType, o *order.Order, store Store, issuedAt time.Time) Document {
	doc := Document{
		Type:            t,
		Title:           Title(t),
		OrderNumber:     FormatOrderNumber(o.Number(), store.OrderNumberPrefix),
		OrderType:       o.Type(),
		IssuedAt:        issuedAt,
		Store:           store,
		DeliveryAddress: o.DeliveryAddress().Lines(),
		DeliveryTime:    o.DeliveryTime(),
		CardMessage:     o.CardMessage(),
		Subtotal:        o.Subtotal(),
		DeliveryFee:     o.DeliveryFee(),
		Tax:             o.Tax(),
		Discount:        o.Discount(),
		Total:           o.Total(),
	}

	if c := o.Customer(); c != nil {
		doc.CustomerName = c.FullName()
		doc.CustomerPhone = c.Phone
	}
	if r := o.Recipient(); r != nil {
		doc.RecipientName = r.FullName()
		doc.RecipientPhone = r.Phone
	}
	if d := o.DeliveryDate(); d != nil {
		doc.DeliveryDate = d.Format(DateLayout)
	}

	for _, item := range o.Items() {
		doc.Lines = append(doc.Lines, Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			RowTotal:    item.RowTotal,
		})
	}

	return doc
}

// Standalone builds a document that is not tied to an order, such as a report.
func Standalone(t printjob.DocumentType, store Store, issuedAt time.Time) Document {
	return Document{
		Type:     t,
		Title:    Title(t),
		IssuedAt: issuedAt,
		Store:    store,
	}
}
