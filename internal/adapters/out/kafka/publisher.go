// Package kafka publishes order status changes for other services.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/tracing"
)

const eventTypeStatusChanged = "OrderStatusChanged"

// Producer is the part of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// OrderEventPublisher implements ports.OrderEventPublisher. Records are keyed
// by order id so that the changes of one order stay in order.
type OrderEventPublisher struct {
	producer Producer
	topic    string
}

func NewOrderEventPublisher(producer Producer, topic string) *OrderEventPublisher {
	return &OrderEventPublisher{producer: producer, topic: topic}
}

// NewClient connects a producer to the seed brokers.
func NewClient(brokers []string, clientID string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
	)
}

type statusChangedMessage struct {
	EventType      string    `json:"eventType"`
	OrderID        uuid.UUID `json:"orderId"`
	OrderNumber    int64     `json:"orderNumber"`
	OrderType      string    `json:"orderType"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ActorID        string    `json:"actorId,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	value, err := json.Marshal(statusChangedMessage{
		EventType:      eventTypeStatusChanged,
		OrderID:        event.OrderID,
		OrderNumber:    event.OrderNumber,
		OrderType:      event.OrderType.String(),
		PreviousStatus: event.PreviousStatus.String(),
		NewStatus:      event.NewStatus.String(),
		ActorID:        event.ActorID,
		Notes:          event.Notes,
		OccurredAt:     event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventTypeStatusChanged, err)
	}

	record := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(event.OrderID.String()),
		Value:   value,
		Headers: append(tracing.KafkaHeaders(ctx), kgo.RecordHeader{Key: "eventType", Value: []byte(eventTypeStatusChanged)}),
	}

	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", p.topic, err)
	}
	return nil
}
