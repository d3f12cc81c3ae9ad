package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/pkg/errs"
)

// CommunicationRecord is the audit entry of a message that was handed to a
// provider. Records are append-only.
type CommunicationRecord struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Channel   Channel
	Recipient string
	Subject   string
	Message   string
	Automatic bool
	Provider  string
	CreatedAt time.Time
}

// NewCommunicationRecord builds the record of an automatic message.
func NewCommunicationRecord(orderID uuid.UUID, msg Message, provider string, at time.Time) (CommunicationRecord, error) {
	var orderErr, recipientErr error
	if orderID == uuid.Nil {
		orderErr = errs.NewValueIsRequiredError("orderId")
	}
	if msg.Address == "" {
		recipientErr = errs.NewValueIsRequiredError("recipient")
	}
	if err := errors.Join(orderErr, recipientErr, msg.Channel.Validate()); err != nil {
		return CommunicationRecord{}, err
	}

	subject := msg.Subject
	if msg.Channel != Email {
		subject = ""
	}

	return CommunicationRecord{
		ID:        uuid.New(),
		OrderID:   orderID,
		Channel:   msg.Channel,
		Recipient: msg.Address,
		Subject:   subject,
		Message:   msg.Body,
		Automatic: true,
		Provider:  provider,
		CreatedAt: at,
	}, nil
}

// Message is a rendered notification ready to be handed to a transport.
type Message struct {
	Channel Channel
	Role    Role
	Address string
	Subject string
	Body    string
}
