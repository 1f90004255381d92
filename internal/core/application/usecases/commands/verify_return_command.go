package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyReturnCommandIsNotConstructed = errors.New(
	"VerifyReturnCommand must be created via NewVerifyReturnCommand constructor",
)

// VerifyReturnCommand represents a manager or owner confirming a submitted
// return. Verification is final and restocks the returned units exactly once.
type VerifyReturnCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	verifierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewVerifyReturnCommand creates a command to verify a submitted return.
func NewVerifyReturnCommand(orderID, verifierID kernel.UUID) (VerifyReturnCommand, error) {
	verifyCommand := VerifyReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		verifyCommand.setOrderID(orderID),
		verifyCommand.setVerifierID(verifierID),
	); err != nil {
		return VerifyReturnCommand{}, err
	}

	return verifyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyReturnCommand) Validate() error {
	return c.guard.Validate(ErrVerifyReturnCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c VerifyReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VerifierID returns the verifying user's identifier.
func (c VerifyReturnCommand) VerifierID() kernel.UUID {
	return c.verifierID
}

func (c *VerifyReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyReturnCommand) setVerifierID(verifierID kernel.UUID) error {
	if err := verifierID.Validate(); err != nil {
		return err
	}

	c.verifierID = verifierID
	return nil
}
