package order

import (
	"time"

	"github.com/google/uuid"
)

// StatusChanged is published after a status change has been committed.
type StatusChanged struct {
	OrderID        uuid.UUID
	OrderNumber    int64
	OrderType      Type
	PreviousStatus Status
	NewStatus      Status
	ActorID        string
	Notes          string
	OccurredAt     time.Time
}

// NewStatusChanged builds the event for an order that has just moved from previous.
func NewStatusChanged(o *Order, previous Status, actorID, notes string) StatusChanged {
	return StatusChanged{
		OrderID:        o.ID(),
		OrderNumber:    o.Number(),
		OrderType:      o.Type(),
		PreviousStatus: previous,
		NewStatus:      o.Status(),
		ActorID:        actorID,
		Notes:          notes,
		OccurredAt:     o.UpdatedAt(),
	}
}
