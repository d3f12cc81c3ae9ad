package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidTransition      = errors.New("status transition is invalid")
	ErrInvalidRetryState      = errors.New("retry is not allowed in current state")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrRenderFailure          = errors.New("render failure")
	ErrDispatchFailure        = errors.New("dispatch failure")
)

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
	}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{
		ParamName: paramName,
		Value:     value,
		Min:       minValue,
		Max:       maxValue,
		Cause:     cause,
	}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports a status change that is not an edge of the
// entity's state machine. Allowed lists the statuses reachable from From.
type InvalidTransitionError struct {
	Entity  string
	From    string
	To      string
	Allowed []string
}

func NewInvalidTransitionError(entity, from, to string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:  entity,
		From:    from,
		To:      to,
		Allowed: allowed,
	}
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("%s: %s %s -> %s (allowed: %s)", ErrInvalidTransition, e.Entity, e.From, e.To, allowed)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidRetryStateError reports a retry requested for an entity that is not failed.
type InvalidRetryStateError struct {
	ID    any
	State string
}

func NewInvalidRetryStateError(id any, state string) *InvalidRetryStateError {
	return &InvalidRetryStateError{
		ID:    id,
		State: state,
	}
}

func (e *InvalidRetryStateError) Error() string {
	return fmt.Sprintf("%s: %v is %s", ErrInvalidRetryState, e.ID, e.State)
}

func (e *InvalidRetryStateError) Unwrap() error {
	return ErrInvalidRetryState
}

// ConcurrentModificationError reports a conditional update that lost a race.
type ConcurrentModificationError struct {
	Entity string
	ID     any
}

func NewConcurrentModificationError(entity string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		Entity: entity,
		ID:     id,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %v was changed by another request", ErrConcurrentModification, e.Entity, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// RenderFailureError wraps a renderer error for one output format.
type RenderFailureError struct {
	Format   string
	Template string
	Cause    error
}

func NewRenderFailureError(format, template string, cause error) *RenderFailureError {
	return &RenderFailureError{
		Format:   format,
		Template: template,
		Cause:    cause,
	}
}

func (e *RenderFailureError) Error() string {
	return fmt.Sprintf("%s: %s with template %s (cause: %v)", ErrRenderFailure, e.Format, e.Template, e.Cause)
}

func (e *RenderFailureError) Unwrap() error {
	return ErrRenderFailure
}

// DispatchFailureError wraps a transport error for one channel and recipient.
type DispatchFailureError struct {
	Channel   string
	Recipient string
	Cause     error
}

func NewDispatchFailureError(channel, recipient string, cause error) *DispatchFailureError {
	return &DispatchFailureError{
		Channel:   channel,
		Recipient: recipient,
		Cause:     cause,
	}
}

func (e *DispatchFailureError) Error() string {
	return fmt.Sprintf("%s: %s to %s (cause: %v)", ErrDispatchFailure, e.Channel, e.Recipient, e.Cause)
}

func (e *DispatchFailureError) Unwrap() error {
	return ErrDispatchFailure
}

func sanitize(v any) any {
	if s, ok := v.(string); ok {
		return strings.ReplaceAll(s, "\n", " ")
	}
	return v
}
