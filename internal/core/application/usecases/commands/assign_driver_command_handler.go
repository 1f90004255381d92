package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// AssignDriverCommandHandler assigns a driver to an order. Assignment does
// not change the shipment status, but it is refused with LockedError once
// the order is delivered.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the driver assignment command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	if err = aggregate.AssignDriver(cmd.DriverID(), cmd.Commission(), time.Now()); err != nil {
		return err
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
