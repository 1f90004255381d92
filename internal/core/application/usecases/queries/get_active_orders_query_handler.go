package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders straight from the
// database, skipping aggregate reconstruction for this list projection.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders in non-terminal statuses.
// Results are sorted by creation time, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			invoice_number,
			status,
			country,
			city,
			return_phase
		FROM orders
		WHERE status NOT IN (?, ?, ?)
		ORDER BY created_at
	`, order.Delivered.String(), order.Returned.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var invoiceNumber, status, country, city string
		var returnPhase int

		if err = rows.Scan(&id, &invoiceNumber, &status, &country, &city, &returnPhase); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, GetActiveOrdersQueryResponse{
			ID:            orderID,
			InvoiceNumber: invoiceNumber,
			Status:        displayStatus(status, order.ReturnPhase(returnPhase)),
			Country:       country,
			City:          city,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func displayStatus(status string, phase order.ReturnPhase) string {
	switch phase {
	case order.ReturnVerified:
		return "return_verified"
	case order.ReturnSubmitted:
		return "awaiting_verification"
	default:
		return status
	}
}
