// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for common validation scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is invalid
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: an object cannot be found
//
// and for the fulfillment pipeline:
//   - InvalidTransitionError: a status change is not an edge of the state machine
//   - InvalidRetryStateError: a retry was requested for a job that has not failed
//   - ConcurrentModificationError: a conditional update lost a race
//   - RenderFailureError: a document could not be rendered in a format
//   - DispatchFailureError: a notification could not be sent on a channel
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
package errs
