package commands

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetSettlementInputsCommandIsNotConstructed = errors.New(
		"SetSettlementInputsCommand must be created via NewSetSettlementInputsCommand constructor",
	)
	ErrNoSettlementInputs       = errors.New("at least one settlement input is required")
	ErrInvestorAmountIsInvalid  = errors.New("investor amount must be a non-negative finite amount")
	ErrReferenceProfitIsInvalid = errors.New("reference profit must be a non-negative finite amount")
)

// InvestorShareInput is the raw investor share as received from the outer
// layer. Pending marks a share agreed but not yet paid out.
type InvestorShareInput struct {
	InvestorID kernel.UUID
	Amount     float64
	Pending    bool
}

// SetSettlementInputsCommand represents a request to attach the optional
// settlement participants to an order: the managing user, an investor
// share, the referring commissioner, and a reference profit. Every field
// is optional, but at least one must be present.
type SetSettlementInputsCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	managerID       *kernel.UUID
	investor        *InvestorShareInput
	commissionerID  *kernel.UUID
	referenceProfit *float64

	guard guard.ConstructorGuard
}

// NewSetSettlementInputsCommand creates a command to attach settlement
// participants to an order.
func NewSetSettlementInputsCommand(
	orderID kernel.UUID,
	managerID *kernel.UUID,
	investor *InvestorShareInput,
	commissionerID *kernel.UUID,
	referenceProfit *float64,
) (SetSettlementInputsCommand, error) {
	inputsCommand := SetSettlementInputsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if managerID == nil && investor == nil && commissionerID == nil && referenceProfit == nil {
		return SetSettlementInputsCommand{}, ErrNoSettlementInputs
	}

	if err := errors.Join(
		inputsCommand.setOrderID(orderID),
		inputsCommand.setManagerID(managerID),
		inputsCommand.setInvestor(investor),
		inputsCommand.setCommissionerID(commissionerID),
		inputsCommand.setReferenceProfit(referenceProfit),
	); err != nil {
		return SetSettlementInputsCommand{}, err
	}

	return inputsCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SetSettlementInputsCommand) Validate() error {
	return c.guard.Validate(ErrSetSettlementInputsCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SetSettlementInputsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ManagerID returns the managing user to assign, if any.
func (c SetSettlementInputsCommand) ManagerID() *kernel.UUID {
	return c.managerID
}

// Investor returns the investor share to attach, if any.
func (c SetSettlementInputsCommand) Investor() *InvestorShareInput {
	return c.investor
}

// CommissionerID returns the referring commissioner, if any.
func (c SetSettlementInputsCommand) CommissionerID() *kernel.UUID {
	return c.commissionerID
}

// ReferenceProfit returns the reference profit to record, if any.
func (c SetSettlementInputsCommand) ReferenceProfit() *float64 {
	return c.referenceProfit
}

func (c *SetSettlementInputsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetSettlementInputsCommand) setManagerID(managerID *kernel.UUID) error {
	if managerID == nil {
		return nil
	}
	if err := managerID.Validate(); err != nil {
		return err
	}

	c.managerID = managerID
	return nil
}

func (c *SetSettlementInputsCommand) setInvestor(investor *InvestorShareInput) error {
	if investor == nil {
		return nil
	}
	if err := investor.InvestorID.Validate(); err != nil {
		return err
	}
	if math.IsNaN(investor.Amount) || math.IsInf(investor.Amount, 0) || investor.Amount < 0 {
		return ErrInvestorAmountIsInvalid
	}

	c.investor = investor
	return nil
}

func (c *SetSettlementInputsCommand) setCommissionerID(commissionerID *kernel.UUID) error {
	if commissionerID == nil {
		return nil
	}
	if err := commissionerID.Validate(); err != nil {
		return err
	}

	c.commissionerID = commissionerID
	return nil
}

func (c *SetSettlementInputsCommand) setReferenceProfit(referenceProfit *float64) error {
	if referenceProfit == nil {
		return nil
	}
	if math.IsNaN(*referenceProfit) || math.IsInf(*referenceProfit, 0) || *referenceProfit < 0 {
		return ErrReferenceProfitIsInvalid
	}

	c.referenceProfit = referenceProfit
	return nil
}
