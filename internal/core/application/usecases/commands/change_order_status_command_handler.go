package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ChangeOrderStatusCommandHandler moves an order through its lifecycle.
// The aggregate enforces the delivered lock and emits stock decrements on
// delivery; the handler forwards those to the warehouse after commit.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.InventoryClient
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
// inventory and publisher may be nil when those collaborators are not wired.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.InventoryClient,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the status change command.
// Returns the domain's typed errors unchanged so callers can branch on
// LockedError for delivered orders and validation errors for unknown
// statuses.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	status, err := order.ParseStatus(cmd.Status())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	adjustments, err := aggregate.ChangeStatus(status, time.Now())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	sendStockAdjustments(ctx, h.inventory, h.logger, aggregate.ID(), adjustments)
	publishOrderChanged(ctx, h.publisher, h.logger, aggregate.ID())
	return nil
}
