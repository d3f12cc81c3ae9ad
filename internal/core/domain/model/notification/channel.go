package notification

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Channel is the medium a message is sent through.
type Channel string

const (
	Email Channel = "EMAIL"
	SMS   Channel = "SMS"
)

func (c Channel) Validate() error {
	switch c {
	case Email, SMS:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("channel is invalid", fmt.Errorf("%q is not a valid channel", string(c)))
	}
}

func (c Channel) String() string {
	return string(c)
}

// Role is who a message is addressed to.
type Role string

const (
	Customer  Role = "CUSTOMER"
	Recipient Role = "RECIPIENT"
)

func (r Role) String() string {
	return string(r)
}
