package commands

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAssignDriverCommandIsNotConstructed = errors.New(
		"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
	)
	ErrCommissionIsInvalid = errors.New("commission must be a non-negative finite amount")
)

// AssignDriverCommand represents a request to assign a delivery driver to
// an order with a per-order commission override.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	driverID   kernel.UUID
	commission float64

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to an order.
func NewAssignDriverCommand(orderID, driverID kernel.UUID, commission float64) (AssignDriverCommand, error) {
	assignCommand := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setOrderID(orderID),
		assignCommand.setDriverID(driverID),
		assignCommand.setCommission(commission),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c AssignDriverCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the driver's identifier.
func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Commission returns the per-order driver commission.
func (c AssignDriverCommand) Commission() float64 {
	return c.commission
}

func (c *AssignDriverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *AssignDriverCommand) setCommission(commission float64) error {
	if math.IsNaN(commission) || math.IsInf(commission, 0) || commission < 0 {
		return ErrCommissionIsInvalid
	}

	c.commission = commission
	return nil
}
