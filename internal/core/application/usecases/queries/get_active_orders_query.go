// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read from the database directly or through the repository
// port, bypassing the aggregate write model where a projection suffices.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order in a non-terminal shipment
// status for dispatch and monitoring boards.
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query to retrieve active orders.
// This is a parameterless query that fetches all non-terminal orders.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse represents one active order row. Status is
// the composite display status, so a cancelled order whose return awaits
// verification shows "awaiting_verification" rather than "cancelled".
type GetActiveOrdersQueryResponse struct {
	ID            kernel.UUID
	InvoiceNumber string
	Status        string
	Country       string
	City          string
}
