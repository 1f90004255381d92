package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// SetSettlementInputsCommandHandler attaches settlement participants to an
// order. The settlement calculator reads these inputs at report time, so
// attaching them never recomputes or stores a breakdown.
type SetSettlementInputsCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewSetSettlementInputsCommandHandler creates a handler for settlement input updates.
func NewSetSettlementInputsCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) SetSettlementInputsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SetSettlementInputsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the settlement inputs command, applying only the inputs
// the command carries.
func (h *SetSettlementInputsCommandHandler) Handle(ctx context.Context, cmd SetSettlementInputsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if managerID := cmd.ManagerID(); managerID != nil {
		if err = aggregate.AssignManager(*managerID, now); err != nil {
			return err
		}
	}
	if investor := cmd.Investor(); investor != nil {
		share := order.InvestorShare{
			InvestorID: investor.InvestorID,
			Amount:     investor.Amount,
			Pending:    investor.Pending,
		}
		if err = aggregate.SetInvestorProfit(share, now); err != nil {
			return err
		}
	}
	if commissionerID := cmd.CommissionerID(); commissionerID != nil {
		if err = aggregate.SetCommissioner(*commissionerID, now); err != nil {
			return err
		}
	}
	if referenceProfit := cmd.ReferenceProfit(); referenceProfit != nil {
		if err = aggregate.SetReferenceProfit(*referenceProfit, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate.ID())
	return nil
}
