package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
)

// SubmitReturnCommandHandler records a return submission. Retries while
// the submission awaits verification are no-ops, so a driver tapping the
// button twice cannot corrupt the workflow.
type SubmitReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderChangedPublisher
	logger     *slog.Logger
}

// NewSubmitReturnCommandHandler creates a handler for return submissions.
func NewSubmitReturnCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
) SubmitReturnCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SubmitReturnCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the return submission command.
func (h *SubmitReturnCommandHandler) Handle(ctx context.Context, cmd SubmitReturnCommand) error {
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

	if err = aggregate.SubmitReturn(cmd.Reason(), time.Now()); err != nil {
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
