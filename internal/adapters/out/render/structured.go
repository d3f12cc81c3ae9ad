package render

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/document"
)

// StructuredRenderer emits the document as JSON for agents that lay it out
// themselves. Amounts are integer cents.
type StructuredRenderer struct{}

type structuredDocument struct {
	Template        string           `json:"template"`
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	OrderNumber     string           `json:"orderNumber,omitempty"`
	OrderType       string           `json:"orderType,omitempty"`
	IssuedAt        time.Time        `json:"issuedAt"`
	Store           structuredStore  `json:"store"`
	CustomerName    string           `json:"customerName,omitempty"`
	CustomerPhone   string           `json:"customerPhone,omitempty"`
	RecipientName   string           `json:"recipientName,omitempty"`
	RecipientPhone  string           `json:"recipientPhone,omitempty"`
	DeliveryAddress []string         `json:"deliveryAddress,omitempty"`
	DeliveryDate    string           `json:"deliveryDate,omitempty"`
	DeliveryTime    string           `json:"deliveryTime,omitempty"`
	CardMessage     string           `json:"cardMessage,omitempty"`
	Lines           []structuredLine `json:"lines"`
	Totals          *structuredTotal `json:"totals,omitempty"`
}

type structuredStore struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type structuredLine struct {
	Description    string `json:"description"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents *int64 `json:"unitPriceCents,omitempty"`
	RowTotalCents  *int64 `json:"rowTotalCents,omitempty"`
}

type structuredTotal struct {
	SubtotalCents    int64 `json:"subtotalCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents"`
	TaxCents         int64 `json:"taxCents"`
	DiscountCents    int64 `json:"discountCents"`
	TotalCents       int64 `json:"totalCents"`
}

func (StructuredRenderer) Render(doc document.Document, templateID string) ([]byte, error) {
	prices := showsPrices(doc.Type)

	out := structuredDocument{
		Template:        templateID,
		Type:            doc.Type.String(),
		Title:           doc.Title,
		OrderNumber:     doc.OrderNumber,
		OrderType:       doc.OrderType.String(),
		IssuedAt:        doc.IssuedAt,
		Store:           structuredStore{Name: doc.Store.Name, Phone: doc.Store.Phone, Address: doc.Store.Address},
		CustomerName:    doc.CustomerName,
		CustomerPhone:   doc.CustomerPhone,
		RecipientName:   doc.RecipientName,
		RecipientPhone:  doc.RecipientPhone,
		DeliveryAddress: doc.DeliveryAddress,
		DeliveryDate:    doc.DeliveryDate,
		DeliveryTime:    doc.DeliveryTime,
		CardMessage:     doc.CardMessage,
		Lines:           make([]structuredLine, 0, len(doc.Lines)),
	}

	for _, l := range doc.Lines {
		line := structuredLine{Description: l.Description, Quantity: l.Quantity}
		if prices {
			unit, row := l.UnitPrice.Cents(), l.RowTotal.Cents()
			line.UnitPriceCents, line.RowTotalCents = &unit, &row
		}
		out.Lines = append(out.Lines, line)
	}

	if prices {
		out.Totals = &structuredTotal{
			SubtotalCents:    doc.Subtotal.Cents(),
			DeliveryFeeCents: doc.DeliveryFee.Cents(),
			TaxCents:         doc.Tax.Cents(),
			DiscountCents:    doc.Discount.Cents(),
			TotalCents:       doc.Total.Cents(),
		}
	}

	return json.Marshal(out)
}
