package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their lifecycle state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its lifecycle and return state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInOpenStatuses retrieves every order in a non-terminal status.
	GetAllInOpenStatuses(ctx context.Context) ([]*order.Order, error)

	// GetAllCreatedBetween retrieves orders created in [from, to),
	// regardless of status. Used by summary reporting.
	GetAllCreatedBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error)
}
