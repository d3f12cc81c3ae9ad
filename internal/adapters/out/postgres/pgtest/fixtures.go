package pgtest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
)

// OrderFixture describes an order row and its optional customer and recipient.
type OrderFixture struct {
	Number    int64
	Type      string
	Source    string
	Status    string
	Customer  *orderrepo.CustomerDTO
	Recipient *orderrepo.RecipientDTO
	Items     []orderrepo.OrderItemDTO
	At        time.Time
}

// SeedOrder inserts the fixture and returns the order id. Empty fields get
// delivery / POS / PAID defaults.
func SeedOrder(db *gorm.DB, f OrderFixture) (uuid.UUID, error) {
	if f.Type == "" {
		f.Type = "DELIVERY"
	}
	if f.Source == "" {
		f.Source = "POS"
	}
	if f.Status == "" {
		f.Status = "PAID"
	}
	if f.At.IsZero() {
		f.At = time.Date(2026, time.February, 13, 16, 0, 0, 0, time.UTC)
	}

	dto := orderrepo.OrderDTO{
		ID:                 uuid.New(),
		OrderNumber:        f.Number,
		Type:               f.Type,
		Source:             f.Source,
		Status:             f.Status,
		DeliveryFeeCents:   1500,
		PaymentAmountCents: 8950,
		CreatedAt:          f.At,
		UpdatedAt:          f.At,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if f.Customer != nil {
			if f.Customer.ID == uuid.Nil {
				f.Customer.ID = uuid.New()
			}
			if err := tx.Create(f.Customer).Error; err != nil {
				return err
			}
			dto.CustomerID = &f.Customer.ID
		}
		if f.Recipient != nil {
			if f.Recipient.ID == uuid.Nil {
				f.Recipient.ID = uuid.New()
			}
			if err := tx.Create(f.Recipient).Error; err != nil {
				return err
			}
			dto.RecipientID = &f.Recipient.ID
		}
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}
		for i := range f.Items {
			item := f.Items[i]
			item.ID = uuid.New()
			item.OrderID = dto.ID
			item.Position = i
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return dto.ID, nil
}
