package printjob

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// DocumentType identifies what is being printed.
type DocumentType string

const (
	Receipt     DocumentType = "RECEIPT"
	OrderTicket DocumentType = "ORDER_TICKET"
	Report      DocumentType = "REPORT"
	Label       DocumentType = "LABEL"
)

// AllDocumentTypes returns every known document type.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{Receipt, OrderTicket, Report, Label}
}

// ParseDocumentType converts an external string into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t DocumentType) Validate() error {
	switch t {
	case Receipt, OrderTicket, Report, Label:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("document type is invalid",
			fmt.Errorf("%q is not a valid document type", string(t)))
	}
}

func (t DocumentType) String() string {
	return string(t)
}

// DefaultPriority is the queue priority used when the caller does not give one.
// Tickets and receipts are needed at the counter right away.
func (t DocumentType) DefaultPriority() int {
	switch t {
	case OrderTicket, Receipt:
		return 10
	default:
		return 5
	}
}

// DefaultTemplate is the template used when the caller does not name one,
// e.g. "order-ticket-v1".
func (t DocumentType) DefaultTemplate() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), "_", "-") + "-v1"
}
