package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"fulfillment/internal/core/domain/model/notification"
)

// ProviderName is recorded on communication records sent through the gateway.
const ProviderName = "rabbitmq-gateway"

// Publisher is the part of *amqp.Channel the transport uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Transport implements ports.NotificationTransport. Messages are routed by
// channel: notify.email or notify.sms.
type Transport struct {
	mu       sync.Mutex
	ch       Publisher
	exchange string
	now      func() time.Time
}

func NewTransport(ch Publisher, exchange string) *Transport {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Transport{ch: ch, exchange: exchange, now: time.Now}
}

// outboundMessage is the gateway contract.
type outboundMessage struct {
	Channel   string `json:"channel"`
	Role      string `json:"role"`
	To        string `json:"to"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	Automatic bool   `json:"automatic"`
}

func RoutingKey(c notification.Channel) string {
	return "notify." + strings.ToLower(c.String())
}

func (t *Transport) Send(ctx context.Context, msg notification.Message) error {
	body, err := json.Marshal(outboundMessage{
		Channel:   msg.Channel.String(),
		Role:      string(msg.Role),
		To:        msg.Address,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Automatic: true,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ch.PublishWithContext(ctx,
		t.exchange,
		RoutingKey(msg.Channel),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    t.now(),
			Body:         body,
		},
	)
}

func (t *Transport) Provider() string {
	return ProviderName
}
