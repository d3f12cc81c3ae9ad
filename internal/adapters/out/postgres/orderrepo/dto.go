// Package orderrepo maps the order aggregate to the orders, order_items,
// customers and recipients tables.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber        int64      `gorm:"uniqueIndex"`
	Type               string     `gorm:"size:16;not null"`
	Source             string     `gorm:"size:16;not null"`
	Status             string     `gorm:"size:32;not null;index"`
	CustomerID         *uuid.UUID `gorm:"type:uuid;index"`
	RecipientID        *uuid.UUID `gorm:"type:uuid"`
	DeliveryAddress    AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryDate       *time.Time `gorm:"type:date"`
	DeliveryTime       string     `gorm:"size:64"`
	CardMessage        string     `gorm:"type:text"`
	DeliveryFeeCents   int64
	TaxCents           int64
	DiscountCents      int64
	PaymentAmountCents int64
	CreatedAt          time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of the order_items table.
type OrderItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Position       int
	Description    string
	Quantity       int
	UnitPriceCents int64
	RowTotalCents  int64
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// CustomerDTO is a row of the customers table.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// RecipientDTO is a row of the recipients table.
type RecipientDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	CustomerID *uuid.UUID `gorm:"type:uuid"`
	Address    AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
}

func (RecipientDTO) TableName() string {
	return "recipients"
}

// AddressDTO is embedded in orders and recipients.
type AddressDTO struct {
	Line1      string
	Line2      string
	City       string
	Province   string
	PostalCode string
	Country    string
}

func (a AddressDTO) toDomain() kernel.Address {
	return kernel.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// toDomain assembles the aggregate from its rows. customer and recipient may be nil.
func toDomain(dto OrderDTO, items []OrderItemDTO, customer *CustomerDTO, recipient *RecipientDTO) (*order.Order, error) {
	attrs := order.Attributes{
		ID:              dto.ID,
		Number:          dto.OrderNumber,
		Type:            order.Type(dto.Type),
		Source:          order.Source(dto.Source),
		Status:          order.Status(dto.Status),
		CustomerID:      dto.CustomerID,
		DeliveryAddress: dto.DeliveryAddress.toDomain(),
		DeliveryDate:    dto.DeliveryDate,
		DeliveryTime:    dto.DeliveryTime,
		CardMessage:     dto.CardMessage,
		DeliveryFee:     kernel.NewMoney(dto.DeliveryFeeCents),
		Tax:             kernel.NewMoney(dto.TaxCents),
		Discount:        kernel.NewMoney(dto.DiscountCents),
		PaymentAmount:   kernel.NewMoney(dto.PaymentAmountCents),
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	}

	if customer != nil {
		attrs.Customer = &order.Customer{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
			Phone:     customer.Phone,
		}
	}

	if recipient != nil {
		attrs.Recipient = &order.Recipient{
			ID:         recipient.ID,
			FirstName:  recipient.FirstName,
			LastName:   recipient.LastName,
			Phone:      recipient.Phone,
			Email:      recipient.Email,
			CustomerID: recipient.CustomerID,
			Address:    recipient.Address.toDomain(),
		}
	}

	for _, item := range items {
		attrs.Items = append(attrs.Items, order.Item{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   kernel.NewMoney(item.UnitPriceCents),
			RowTotal:    kernel.NewMoney(item.RowTotalCents),
		})
	}

	return order.NewOrder(attrs)
}
