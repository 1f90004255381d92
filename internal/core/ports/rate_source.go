package ports

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// RateSource supplies a fresh exchange-rate table. Implementations may
// call an external rate provider or read a locally maintained table; the
// core treats the result as a pure input.
type RateSource interface {
	Fetch(ctx context.Context) (services.RateTable, error)
}
