// Package order provides the Order aggregate of the fulfillment pipeline and
// the order status state machine.
//
// The package includes:
//   - Order: the aggregate root, read-only apart from its status
//   - Status: the state machine that enforces valid status transitions
//   - Type and Source: how the order leaves the shop and where it was taken
//   - Customer, Recipient and Item: read-only snapshots attached to an order
//
// Key business rules:
//   - Status moves only along the edges of the transition table
//   - COMPLETED and CANCELLED are terminal
//   - PICKUP orders never go OUT_FOR_DELIVERY
package order
