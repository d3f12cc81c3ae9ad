package notification

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Family is the key under which a settings document is stored.
type Family string

// OrderStatus is the family of order status change notifications.
const OrderStatus Family = "ORDER_STATUS"

//go:embed defaults.yaml
var defaultsYAML []byte

// Settings controls which messages are sent on order status changes.
// BusinessHoursOnly is informational: it is stored and returned but the
// dispatcher does not delay messages.
type Settings struct {
	GlobalEmailEnabled  bool         `json:"globalEmailEnabled" yaml:"globalEmailEnabled"`
	GlobalSmsEnabled    bool         `json:"globalSmsEnabled" yaml:"globalSmsEnabled"`
	BusinessHoursOnly   bool         `json:"businessHoursOnly" yaml:"businessHoursOnly"`
	StatusNotifications []StatusRule `json:"statusNotifications" yaml:"statusNotifications"`
}

// StatusRule is the per-status configuration: which role/channel pairs are
// enabled and the templates to render for each of them.
type StatusRule struct {
	ID                     string       `json:"id" yaml:"id"`
	Status                 order.Status `json:"status" yaml:"status"`
	DisplayName            string       `json:"displayName" yaml:"displayName"`
	Description            string       `json:"description" yaml:"description"`
	CustomerEmailEnabled   bool         `json:"customerEmailEnabled" yaml:"customerEmailEnabled"`
	CustomerSmsEnabled     bool         `json:"customerSmsEnabled" yaml:"customerSmsEnabled"`
	RecipientEmailEnabled  bool         `json:"recipientEmailEnabled" yaml:"recipientEmailEnabled"`
	RecipientSmsEnabled    bool         `json:"recipientSmsEnabled" yaml:"recipientSmsEnabled"`
	CustomerEmailSubject   string       `json:"customerEmailSubject" yaml:"customerEmailSubject"`
	CustomerEmailTemplate  string       `json:"customerEmailTemplate" yaml:"customerEmailTemplate"`
	CustomerSmsTemplate    string       `json:"customerSmsTemplate" yaml:"customerSmsTemplate"`
	RecipientEmailSubject  string       `json:"recipientEmailSubject" yaml:"recipientEmailSubject"`
	RecipientEmailTemplate string       `json:"recipientEmailTemplate" yaml:"recipientEmailTemplate"`
	RecipientSmsTemplate   string       `json:"recipientSmsTemplate" yaml:"recipientSmsTemplate"`
}

// Template is the subject and body of one message. Subject is empty for SMS.
type Template struct {
	Subject string
	Body    string
}

// DefaultSettings returns the factory settings shipped with the service.
func DefaultSettings() (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultsYAML, &s); err != nil {
		return Settings{}, fmt.Errorf("decode default notification settings: %w", err)
	}
	return s, nil
}

// Validate checks that every rule references a known status and that no
// status is configured twice.
func (s Settings) Validate() error {
	seen := make(map[order.Status]struct{}, len(s.StatusNotifications))
	var validationErrs []error
	for _, rule := range s.StatusNotifications {
		if err := rule.Status.Validate(); err != nil {
			validationErrs = append(validationErrs, err)
			continue
		}
		if _, dup := seen[rule.Status]; dup {
			validationErrs = append(validationErrs, errs.NewValueIsInvalidErrorWithCause(
				"statusNotifications", fmt.Errorf("status %s is configured more than once", rule.Status)))
		}
		seen[rule.Status] = struct{}{}
	}
	return errors.Join(validationErrs...)
}

// IsSilenced reports whether both channels are globally disabled.
func (s Settings) IsSilenced() bool {
	return !s.GlobalEmailEnabled && !s.GlobalSmsEnabled
}

// ChannelEnabled reports the global switch of a channel.
func (s Settings) ChannelEnabled(c Channel) bool {
	switch c {
	case Email:
		return s.GlobalEmailEnabled
	case SMS:
		return s.GlobalSmsEnabled
	default:
		return false
	}
}

// RuleFor returns the rule configured for a status.
func (s Settings) RuleFor(status order.Status) (StatusRule, bool) {
	for _, rule := range s.StatusNotifications {
		if rule.Status == status {
			return rule, true
		}
	}
	return StatusRule{}, false
}

// Enabled reports the rule's flag for a role/channel pair.
func (r StatusRule) Enabled(role Role, channel Channel) bool {
	switch {
	case role == Customer && channel == Email:
		return r.CustomerEmailEnabled
	case role == Customer && channel == SMS:
		return r.CustomerSmsEnabled
	case role == Recipient && channel == Email:
		return r.RecipientEmailEnabled
	case role == Recipient && channel == SMS:
		return r.RecipientSmsEnabled
	default:
		return false
	}
}

// Template returns the raw templates for a role/channel pair.
func (r StatusRule) Template(role Role, channel Channel) Template {
	switch {
	case role == Customer && channel == Email:
		return Template{Subject: r.CustomerEmailSubject, Body: r.CustomerEmailTemplate}
	case role == Customer && channel == SMS:
		return Template{Body: r.CustomerSmsTemplate}
	case role == Recipient && channel == Email:
		return Template{Subject: r.RecipientEmailSubject, Body: r.RecipientEmailTemplate}
	case role == Recipient && channel == SMS:
		return Template{Body: r.RecipientSmsTemplate}
	default:
		return Template{}
	}
}
