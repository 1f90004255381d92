package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// VerifyReturnCommandHandler confirms a submitted return. The aggregate's
// hard idempotency guard makes a duplicate verification fail with
// AlreadyVerifiedError before any restock signal is produced, so the
// warehouse can never be credited twice for the same parcel.
type VerifyReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	inventory  ports.InventoryClient
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewVerifyReturnCommandHandler creates a handler for return verification.
func NewVerifyReturnCommandHandler(
	uowFactory OrderUoWFactory,
	inventory ports.InventoryClient,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) VerifyReturnCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return VerifyReturnCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the return verification command.
// The restock signal is sent only after the verification has been
// committed; a failed transaction sends nothing.
func (h *VerifyReturnCommandHandler) Handle(ctx context.Context, cmd VerifyReturnCommand) error {
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

	adjustments, err := aggregate.VerifyReturn(cmd.VerifierID(), time.Now())
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
