package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitReturnCommandIsNotConstructed = errors.New(
	"SubmitReturnCommand must be created via NewSubmitReturnCommand constructor",
)

// SubmitReturnCommand represents a driver reporting that a cancelled or
// returned parcel was physically handed back to the company. The reason is
// free text and may be empty.
type SubmitReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewSubmitReturnCommand creates a command to submit a return.
func NewSubmitReturnCommand(orderID kernel.UUID, reason string) (SubmitReturnCommand, error) {
	returnCommand := SubmitReturnCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := returnCommand.setOrderID(orderID); err != nil {
		return SubmitReturnCommand{}, err
	}

	return returnCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitReturnCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReturnCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SubmitReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the driver-entered return reason.
func (c SubmitReturnCommand) Reason() string {
	return c.reason
}

func (c *SubmitReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
