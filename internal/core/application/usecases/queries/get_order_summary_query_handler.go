package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetOrderSummaryQueryHandler builds report totals. Unlike the list
// projections this reads full aggregates through the repository port,
// because settling an order needs its items, creator role, and settlement
// inputs rather than a few columns.
type GetOrderSummaryQueryHandler struct {
	orderRepo  ports.OrderRepository
	aggregator services.SummaryAggregator
}

// NewGetOrderSummaryQueryHandler creates a handler for summary queries.
func NewGetOrderSummaryQueryHandler(
	orderRepo ports.OrderRepository,
	aggregator services.SummaryAggregator,
) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{
		orderRepo:  orderRepo,
		aggregator: aggregator,
	}
}

// Handle executes the summary query. The repository narrows the set by
// creation time; the remaining filters are applied in memory by the
// aggregator so spelling variants of the same country or status are
// bucketed together.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	from, to := query.Period()
	orders, err := h.orderRepo.GetAllCreatedBetween(ctx, from, to)
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	summary := h.aggregator.Aggregate(orders, query.Filter())

	return GetOrderSummaryQueryResponse{
		TotalOrders:      summary.TotalOrders,
		TotalQty:         summary.TotalQty,
		DeliveredOrders:  summary.DeliveredOrders,
		DeliveredQty:     summary.DeliveredQty,
		AmountByCurrency: summary.AmountByCurrency,
		TotalProfit:      summary.TotalProfit,
		TotalLoss:        summary.TotalLoss,
		NetProfit:        summary.NetProfit,
	}, nil
}
