package notification_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/pkg/errs"
)

func TestNewCommunicationRecord(t *testing.T) {
	at := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	orderID := uuid.New()

	t.Run("sms drops subject", func(t *testing.T) {
		rec, err := notification.NewCommunicationRecord(orderID, notification.Message{
			Channel: notification.SMS,
			Address: "+15550001",
			Subject: "ignored",
			Body:    "Your order is ready",
		}, "rabbitmq", at)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, orderID, rec.OrderID)
		assert.Empty(t, rec.Subject)
		assert.True(t, rec.Automatic)
		assert.Equal(t, "rabbitmq", rec.Provider)
		assert.Equal(t, at, rec.CreatedAt)
	})

	t.Run("email keeps subject", func(t *testing.T) {
		rec, err := notification.NewCommunicationRecord(orderID, notification.Message{
			Channel: notification.Email,
			Address: "jane@example.com",
			Subject: "Order Delivered - 42",
			Body:    "Thanks",
		}, "rabbitmq", at)

		require.NoError(t, err)
		assert.Equal(t, "Order Delivered - 42", rec.Subject)
	})

	t.Run("requires order and address", func(t *testing.T) {
		_, err := notification.NewCommunicationRecord(uuid.Nil, notification.Message{Channel: notification.SMS}, "p", at)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "recipient")
	})
}
