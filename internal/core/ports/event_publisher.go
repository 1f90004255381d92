package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// OrderChangedPublisher notifies interested consumers that an order's
// state changed. Consumers are expected to refetch a fresh snapshot
// rather than interpret the event payload.
type OrderChangedPublisher interface {
	PublishOrderChanged(ctx context.Context, orderID kernel.UUID) error
}
