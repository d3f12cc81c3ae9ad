package order

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed set of edges; any change of
// status must follow one of them.
//
// State transitions:
//
//	DRAFT ──> PAID ──┬──> IN_DESIGN ──> READY ──┬──> OUT_FOR_DELIVERY ──> COMPLETED
//	                 │        ▲   │             │
//	                 │        │   ▼             └──────────────────────────> COMPLETED
//	                 │      REJECTED
//	                 └──> COMPLETED
//
// Every non-terminal status may also move to CANCELLED. COMPLETED and CANCELLED
// are terminal. PICKUP orders never enter OUT_FOR_DELIVERY.
//
// Status values are persisted and exchanged over the API as their string form.
type Status string

const (
	// Draft is the initial status of an order that has not been paid yet.
	Draft Status = "DRAFT"

	// Paid indicates payment has been captured and production can start.
	Paid Status = "PAID"

	// InDesign indicates a designer is working on the arrangement.
	InDesign Status = "IN_DESIGN"

	// Ready indicates the arrangement is finished and waiting for pickup or a driver.
	Ready Status = "READY"

	// OutForDelivery indicates a driver has left with the order.
	// Only DELIVERY orders can be in this status.
	OutForDelivery Status = "OUT_FOR_DELIVERY"

	// Completed is a terminal status: the order was delivered or picked up.
	Completed Status = "COMPLETED"

	// Rejected indicates the design was rejected and must be reworked.
	Rejected Status = "REJECTED"

	// Cancelled is a terminal status.
	Cancelled Status = "CANCELLED"
)

// transitions lists, for every status, the statuses it may move to.
// Statuses absent from the map are terminal.
var transitions = map[Status][]Status{
	Draft:          {Paid, Cancelled},
	Paid:           {InDesign, Completed, Cancelled},
	InDesign:       {Ready, Rejected, Cancelled},
	Ready:          {OutForDelivery, Completed, Cancelled},
	OutForDelivery: {Completed, Cancelled},
	Rejected:       {InDesign, Cancelled},
}

// AllStatuses returns every known status in workflow order.
func AllStatuses() []Status {
	return []Status{Draft, Paid, InDesign, Ready, OutForDelivery, Completed, Rejected, Cancelled}
}

// ParseStatus converts an external string into a Status.
//
// Returns:
//   - the matching Status
//   - ValueIsInvalidError if the string is not a known status
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks that the status is one of the known statuses.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the persisted form of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves this status.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// NextStatuses returns the statuses reachable from s for an order of the
// given type. For PICKUP orders OUT_FOR_DELIVERY is never offered.
//
// The returned slice is a fresh copy and may be modified by the caller.
func (s Status) NextStatuses(orderType Type) []Status {
	next := make([]Status, 0, len(transitions[s]))
	for _, to := range transitions[s] {
		if to == OutForDelivery && orderType == Pickup {
			continue
		}
		next = append(next, to)
	}
	return next
}

// CanTransitionTo reports whether to is reachable from s for the given order type.
func (s Status) CanTransitionTo(to Status, orderType Type) bool {
	return slices.Contains(s.NextStatuses(orderType), to)
}

// TransitionTo validates the edge s -> to and returns the new status.
//
// Returns:
//   - (to, nil) when the edge exists for the order type
//   - ValueIsInvalidError when to is not a known status
//   - InvalidTransitionError carrying the allowed set otherwise
//
// Example:
//
//	next, err := order.Ready.TransitionTo(order.OutForDelivery, order.Pickup)
//	// err: status transition is invalid: order READY -> OUT_FOR_DELIVERY (allowed: COMPLETED, CANCELLED)
func (s Status) TransitionTo(to Status, orderType Type) (Status, error) {
	if err := to.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(to, orderType) {
		return "", errs.NewInvalidTransitionError("order", s.String(), to.String(), StatusStrings(s.NextStatuses(orderType)))
	}

	return to, nil
}

// StatusStrings converts statuses to their string form.
func StatusStrings(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
