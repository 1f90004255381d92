package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for the expected domain violations of the order lifecycle.
// Callers branch on these with errors.Is, or on the typed errors below with
// errors.As, and surface a specific user-facing message.
var (
	ErrOrderLocked             = errors.New("order is locked")
	ErrReturnAlreadyVerified   = errors.New("return already verified")
	ErrReturnStateIsInvalid    = errors.New("return state is invalid")
	ErrOrderIsNotConstructed   = errors.New("Order must be created via NewOrder or RestoreOrder")
	ErrItemIsNotConstructed    = errors.New("Item must be created via NewItem")
	ErrCreatorIsNotConstructed = errors.New("Creator must be created via NewCreator")
)

// LockedError indicates an attempted mutation of a delivered order's status,
// driver, or driver commission. Delivered orders are frozen; write attempts
// fail rather than silently succeeding.
type LockedError struct {
	OrderID string
	Field   string
}

// NewLockedError creates a LockedError for the given order and field.
func NewLockedError(orderID, field string) *LockedError {
	return &LockedError{OrderID: orderID, Field: field}
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s: delivered order %s cannot change %s", ErrOrderLocked, e.OrderID, e.Field)
}

func (e *LockedError) Unwrap() error {
	return ErrOrderLocked
}

// AlreadyVerifiedError indicates a duplicate return verification. This is the
// hard idempotency guard that keeps a duplicate invocation from restocking
// inventory twice.
type AlreadyVerifiedError struct {
	OrderID string
}

// NewAlreadyVerifiedError creates an AlreadyVerifiedError for the given order.
func NewAlreadyVerifiedError(orderID string) *AlreadyVerifiedError {
	return &AlreadyVerifiedError{OrderID: orderID}
}

func (e *AlreadyVerifiedError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrReturnAlreadyVerified, e.OrderID)
}

func (e *AlreadyVerifiedError) Unwrap() error {
	return ErrReturnAlreadyVerified
}

// InvalidStateError indicates a return-workflow operation on an order whose
// state does not allow it: verifying without a prior submission, or
// submitting a return for an order that is neither cancelled nor returned.
type InvalidStateError struct {
	OrderID string
	Reason  string
}

// NewInvalidStateError creates an InvalidStateError for the given order.
func NewInvalidStateError(orderID, reason string) *InvalidStateError {
	return &InvalidStateError{OrderID: orderID, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: order %s: %s", ErrReturnStateIsInvalid, e.OrderID, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrReturnStateIsInvalid
}
