package services

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/aymerick/raymond"
	"golang.org/x/sync/errgroup"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"
)

// Reasons a dispatch sends nothing.
const (
	SkipNoSettings      = "no-settings"
	SkipSilenced        = "silenced"
	SkipNoRule          = "no-rule"
	SkipMissingCustomer = "missing-customer"
	SkipNoCandidates    = "no-candidates"
)

const maxConcurrentSends = 4

// StoredNotificationSettings exposes the saved notification settings.
type StoredNotificationSettings interface {
	Stored(ctx context.Context) (notification.Settings, bool, error)
}

// DispatchSummary reports what a dispatch did.
type DispatchSummary struct {
	SkipReason string
	Attempted  int
	Sent       int
	Failed     int
}

// NotificationDispatcher sends the order status messages configured for a
// transition and records every message a provider accepted.
type NotificationDispatcher struct {
	settings  StoredNotificationSettings
	transport ports.NotificationTransport
	records   ports.CommunicationRepository
	store     document.Store
	clock     clock.Clock
	logger    *slog.Logger
}

func NewNotificationDispatcher(
	settings StoredNotificationSettings,
	transport ports.NotificationTransport,
	records ports.CommunicationRepository,
	store document.Store,
	clk clock.Clock,
	logger *slog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		settings:  settings,
		transport: transport,
		records:   records,
		store:     store,
		clock:     clk,
		logger:    logger.With("component", "notification_dispatcher"),
	}
}

type candidate struct {
	role    notification.Role
	channel notification.Channel
	address string
}

// Dispatch sends the messages for an order that moved from previous to newStatus.
//
// Every message is sent independently: a failed send is logged and does not
// stop the others. The only error returned is a failure to load the settings.
func (d *NotificationDispatcher) Dispatch(
	ctx context.Context,
	o *order.Order,
	newStatus, previous order.Status,
) (DispatchSummary, error) {
	logger := d.logger.With("orderId", o.ID(), "status", newStatus, "previousStatus", previous)

	settings, stored, err := d.settings.Stored(ctx)
	if err != nil {
		return DispatchSummary{}, err
	}
	if !stored {
		return DispatchSummary{SkipReason: SkipNoSettings}, nil
	}
	if settings.IsSilenced() {
		return DispatchSummary{SkipReason: SkipSilenced}, nil
	}

	rule, ok := settings.RuleFor(newStatus)
	if !ok {
		return DispatchSummary{SkipReason: SkipNoRule}, nil
	}

	customer := o.Customer()
	if customer == nil {
		logger.InfoContext(ctx, "Order has no customer record, notifications skipped")
		return DispatchSummary{SkipReason: SkipMissingCustomer}, nil
	}

	candidates := d.candidates(settings, rule, o)
	if len(candidates) == 0 {
		return DispatchSummary{SkipReason: SkipNoCandidates}, nil
	}

	fields := d.templateData(o, newStatus).Fields()
	text := plainText(fields)

	var sent, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)
	for _, c := range candidates {
		g.Go(func() error {
			if err := d.send(gctx, o, rule, c, fields, text); err != nil {
				failed.Add(1)
				logger.ErrorContext(gctx, "Notification not delivered", "role", c.role, "channel", c.channel, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	summary := DispatchSummary{
		Attempted: len(candidates),
		Sent:      int(sent.Load()),
		Failed:    int(failed.Load()),
	}
	logger.InfoContext(ctx, "Notifications dispatched", "sent", summary.Sent, "failed", summary.Failed)
	return summary, nil
}

func (d *NotificationDispatcher) candidates(settings notification.Settings, rule notification.StatusRule, o *order.Order) []candidate {
	customer := o.Customer()
	addresses := map[notification.Role]map[notification.Channel]string{
		notification.Customer: {
			notification.Email: customer.Email,
			notification.SMS:   customer.Phone,
		},
	}
	if r := o.Recipient(); r != nil {
		email := r.Email
		if email == "" && r.CustomerID != nil && *r.CustomerID == customer.ID {
			email = customer.Email
		}
		addresses[notification.Recipient] = map[notification.Channel]string{
			notification.Email: email,
			notification.SMS:   r.Phone,
		}
	}

	var result []candidate
	for _, role := range []notification.Role{notification.Customer, notification.Recipient} {
		for _, channel := range []notification.Channel{notification.Email, notification.SMS} {
			address := addresses[role][channel]
			if address == "" || !rule.Enabled(role, channel) || !settings.ChannelEnabled(channel) {
				continue
			}
			result = append(result, candidate{role: role, channel: channel, address: address})
		}
	}
	return result
}

func (d *NotificationDispatcher) send(
	ctx context.Context,
	o *order.Order,
	rule notification.StatusRule,
	c candidate,
	fields map[string]any,
	text map[string]any,
) error {
	tmpl := rule.Template(c.role, c.channel)

	// Email bodies are HTML, so values stay escaped there.
	bodyFields := fields
	if c.channel != notification.Email {
		bodyFields = text
	}
	body, err := raymond.Render(tmpl.Body, bodyFields)
	if err != nil {
		return errs.NewRenderFailureError(c.channel.String(), rule.ID, err)
	}

	var subject string
	if c.channel == notification.Email && tmpl.Subject != "" {
		subject, err = raymond.Render(tmpl.Subject, text)
		if err != nil {
			return errs.NewRenderFailureError(c.channel.String(), rule.ID, err)
		}
	}

	msg := notification.Message{
		Channel: c.channel,
		Role:    c.role,
		Address: c.address,
		Subject: subject,
		Body:    body,
	}
	if err := d.transport.Send(ctx, msg); err != nil {
		return errs.NewDispatchFailureError(c.channel.String(), c.address, err)
	}

	record, err := notification.NewCommunicationRecord(o.ID(), msg, d.transport.Provider(), d.clock.Now())
	if err != nil {
		return err
	}
	if err := d.records.Add(ctx, record); err != nil {
		d.logger.ErrorContext(ctx, "Failed to save communication record", "orderId", o.ID(), "error", err)
	}
	return nil
}

func (d *NotificationDispatcher) templateData(o *order.Order, newStatus order.Status) notification.TemplateData {
	data := notification.TemplateData{
		DeliveryAddress: o.DeliveryAddress().String(),
		OrderNumber:     document.FormatOrderNumber(o.Number(), d.store.OrderNumberPrefix),
		OrderTotal:      o.Total().Dollars(),
		DeliveryTime:    o.DeliveryTime(),
		StoreName:       d.store.Name,
		StorePhone:      d.store.Phone,
		IsPickup:        o.IsPickup(),
		NewStatus:       newStatus.String(),
	}

	if c := o.Customer(); c != nil {
		data.CustomerFirstName = c.FirstName
		data.CustomerLastName = c.LastName
		data.CustomerEmail = c.Email
		data.CustomerPhone = c.Phone
	}
	if r := o.Recipient(); r != nil {
		data.RecipientName = r.FullName()
		data.RecipientFirstName = r.FirstName
		data.RecipientPhone = r.Phone
	}
	if date := o.DeliveryDate(); date != nil {
		data.DeliveryDate = date.Format(document.DateLayout)
	}
	return data
}

// plainText copies fields with string values marked safe, for plain text
// output such as SMS bodies and email subjects.
func plainText(fields map[string]any) map[string]any {
	text := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			v = raymond.SafeString(s)
		}
		text[k] = v
	}
	return text
}
