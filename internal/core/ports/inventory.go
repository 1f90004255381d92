package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// InventoryClient is the outbound port to the warehouse service. The
// domain only emits stock adjustment signals; applying them is the
// warehouse's concern. Adjustments are sent after the owning transaction
// commits so a rollback can never double-apply them.
type InventoryClient interface {
	// AdjustStock applies the given adjustments, positive quantities
	// restocking and negative quantities decrementing.
	AdjustStock(ctx context.Context, adjustments []order.StockAdjustment) error
}
