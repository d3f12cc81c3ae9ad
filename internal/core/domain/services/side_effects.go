package services

import (
	"slices"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

// DocumentRule declares a document that is printed automatically when an
// order reaches a status. Empty OrderTypes or Sources match any value; when
// both are set an order must match both.
type DocumentRule struct {
	To         order.Status
	OrderTypes []order.Type
	Sources    []order.Source
	Document   printjob.DocumentType
	TemplateID string
	Priority   int
}

// Matches reports whether the rule applies to the order entering status to.
func (r DocumentRule) Matches(o *order.Order, to order.Status) bool {
	if r.To != to {
		return false
	}
	if len(r.OrderTypes) > 0 && !slices.Contains(r.OrderTypes, o.Type()) {
		return false
	}
	if len(r.Sources) > 0 && !slices.Contains(r.Sources, o.Source()) {
		return false
	}
	return true
}

// SideEffects is what must happen after a status change has been committed.
type SideEffects struct {
	Notify       bool
	PublishEvent bool
	Documents    []DocumentRule
}

// TransitionPolicy is the side-effect table of the order status machine.
//
// Every committed transition notifies and publishes an event; documents are
// printed only where a DocumentRule matches.
//
// Example:
//
//	policy := services.DefaultTransitionPolicy()
//	effects := policy.Evaluate(o, order.Paid)
//	for _, doc := range effects.Documents {
//	    // queue doc.Document with doc.TemplateID
//	}
type TransitionPolicy struct {
	documents []DocumentRule
}

// NewTransitionPolicy creates a policy from explicit document rules.
func NewTransitionPolicy(documents ...DocumentRule) TransitionPolicy {
	return TransitionPolicy{documents: slices.Clone(documents)}
}

// DefaultTransitionPolicy prints an order ticket for every paid order and a
// receipt for paid orders rung up in store.
func DefaultTransitionPolicy() TransitionPolicy {
	return NewTransitionPolicy(
		DocumentRule{
			To:         order.Paid,
			OrderTypes: []order.Type{order.Delivery, order.Pickup},
			Document:   printjob.OrderTicket,
			TemplateID: "order-ticket-v1",
			Priority:   10,
		},
		DocumentRule{
			To:         order.Paid,
			Sources:    []order.Source{order.SourcePOS, order.SourceWalkIn},
			Document:   printjob.Receipt,
			TemplateID: "receipt-v1",
			Priority:   10,
		},
	)
}

// Rules returns a copy of the document rules.
func (p TransitionPolicy) Rules() []DocumentRule {
	return slices.Clone(p.documents)
}

// Evaluate returns the side effects of o entering status to.
func (p TransitionPolicy) Evaluate(o *order.Order, to order.Status) SideEffects {
	effects := SideEffects{Notify: true, PublishEvent: true}
	for _, rule := range p.documents {
		if rule.Matches(o, to) {
			effects.Documents = append(effects.Documents, rule)
		}
	}
	return effects
}
