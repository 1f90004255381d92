package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Post-commit side effects. These run only after the owning transaction
// commits, so a rollback can never leak a stock adjustment or a change
// event. Failures are logged, not returned: the order state is already
// durable and the signals can be replayed from it.

func publishOrderChanged(
	ctx context.Context,
	publisher ports.OrderChangedPublisher,
	logger *slog.Logger,
	orderID kernel.UUID,
) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishOrderChanged(ctx, orderID); err != nil {
		logger.Warn("PublishOrderChangedFailed",
			slog.String("orderId", orderID.String()),
			slog.Any("error", err),
		)
	}
}

func sendStockAdjustments(
	ctx context.Context,
	inventory ports.InventoryClient,
	logger *slog.Logger,
	orderID kernel.UUID,
	adjustments []order.StockAdjustment,
) {
	if inventory == nil || len(adjustments) == 0 {
		return
	}
	if err := inventory.AdjustStock(ctx, adjustments); err != nil {
		logger.Warn("StockAdjustmentFailed",
			slog.String("orderId", orderID.String()),
			slog.Int("adjustments", len(adjustments)),
			slog.Any("error", err),
		)
	}
}
