package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Canonicalizes the raw country and role input, builds the aggregate in
// pending status, and announces the new order after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence; publisher may
// be nil when no event bus is wired.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled
// back on error. The change event is published only after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	role, err := order.ParseRole(cmd.CreatorRole())
	if err != nil {
		return err
	}
	creator, err := order.NewCreator(cmd.CreatorID(), role)
	if err != nil {
		return err
	}
	items, err := cmd.domainItems()
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.InvoiceNumber(),
		kernel.CanonicalCountry(cmd.Country()),
		cmd.City(),
		cmd.PhoneCode(),
		items,
		cmd.ShippingFee(),
		cmd.Discount(),
		cmd.Total(),
		creator,
		time.Now(),
	)
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderChanged(ctx, h.publisher, h.logger, aggregate.ID())
	return nil
}
