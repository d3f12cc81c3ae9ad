// Package kernel holds the shared value objects of the fulfillment domain.
//
// The package includes:
//   - Money: an amount in integer cents with dollar formatting
//   - Address: a postal address with single-line and multi-line renderings
//
// Values in this package are immutable and safe to share between goroutines.
package kernel
