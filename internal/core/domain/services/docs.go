// Package services provides domain services of the fulfillment pipeline that
// do not belong to a single aggregate.
//
// The package includes:
//   - TransitionPolicy: the declarative table of side effects triggered by
//     order status changes (notifications, events, automatic documents)
package services
