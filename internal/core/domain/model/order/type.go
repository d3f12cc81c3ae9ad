package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type tells how the order leaves the shop.
type Type string

const (
	// Delivery orders are driven to a recipient.
	Delivery Type = "DELIVERY"
	// Pickup orders are collected in store and never go out for delivery.
	Pickup Type = "PICKUP"
)

// Validate checks that the type is DELIVERY or PICKUP.
func (t Type) Validate() error {
	switch t {
	case Delivery, Pickup:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type is invalid", fmt.Errorf("%q is not a valid order type", string(t)))
	}
}

func (t Type) String() string {
	return string(t)
}

// Source is the channel through which the order was taken.
type Source string

const (
	SourcePOS     Source = "POS"
	SourceWalkIn  Source = "WALKIN"
	SourcePhone   Source = "PHONE"
	SourceWebsite Source = "WEBSITE"
	SourceWireIn  Source = "WIREIN"
)

// Validate checks that the source is a known channel.
func (s Source) Validate() error {
	switch s {
	case SourcePOS, SourceWalkIn, SourcePhone, SourceWebsite, SourceWireIn:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("source is invalid", fmt.Errorf("%q is not a valid order source", string(s)))
	}
}

// IsInStore reports whether the order was rung up at the counter.
func (s Source) IsInStore() bool {
	return s == SourcePOS || s == SourceWalkIn
}

func (s Source) String() string {
	return string(s)
}
