// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, and outbound capabilities
// such as rendering, blob storage, messaging and agent push.
package ports

import (
	"context"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository gives the fulfillment pipeline access to orders.
// Orders are created and edited elsewhere; only status changes are written here.
type OrderRepository interface {
	// Get loads an order with its items, customer and recipient.
	// A customer reference pointing to a missing row yields a nil Customer.
	// Returns ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)

	// UpdateStatus writes the order's status and updatedAt only if the stored
	// status still equals expected. Returns ConcurrentModificationError when
	// no row matched.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error
}
