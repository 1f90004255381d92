package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
		"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
	)
	ErrSummaryStatusIsUnknown = errors.New("summary status filter is unknown")
	ErrSummaryPeriodIsInvalid = errors.New("summary period end precedes its start")
)

// GetOrderSummaryQuery requests report totals over a filtered order
// collection. All filters are optional; country and status accept any
// spelling the canonicalizer understands.
type GetOrderSummaryQuery struct {
	country  string
	status   string
	agentID  *kernel.UUID
	driverID *kernel.UUID
	from     *time.Time
	to       *time.Time

	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a summary query. The status filter must
// be empty, the open bucket, or a parseable status; the period, when both
// bounds are set, must be ordered.
func NewGetOrderSummaryQuery(
	country string,
	status string,
	agentID *kernel.UUID,
	driverID *kernel.UUID,
	from *time.Time,
	to *time.Time,
) (GetOrderSummaryQuery, error) {
	if status != "" && status != services.StatusOpen {
		if _, err := order.ParseStatus(status); err != nil {
			return GetOrderSummaryQuery{}, ErrSummaryStatusIsUnknown
		}
	}
	if from != nil && to != nil && to.Before(*from) {
		return GetOrderSummaryQuery{}, ErrSummaryPeriodIsInvalid
	}

	return GetOrderSummaryQuery{
		country:  country,
		status:   status,
		agentID:  agentID,
		driverID: driverID,
		from:     from,
		to:       to,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// Filter returns the query as an aggregator filter.
func (q GetOrderSummaryQuery) Filter() services.Filter {
	return services.Filter{
		Country:  q.country,
		Status:   q.status,
		AgentID:  q.agentID,
		DriverID: q.driverID,
		From:     q.from,
		To:       q.to,
	}
}

// Period returns the requested creation-time window, zero times meaning
// unbounded on that side.
func (q GetOrderSummaryQuery) Period() (time.Time, time.Time) {
	var from, to time.Time
	if q.from != nil {
		from = *q.from
	}
	if q.to != nil {
		to = *q.to
	}
	return from, to
}

// GetOrderSummaryQueryResponse carries the aggregated report totals.
// AmountByCurrency buckets delivered totals per target currency; amounts
// are never summed across currencies.
type GetOrderSummaryQueryResponse struct {
	TotalOrders int
	TotalQty    int

	DeliveredOrders int
	DeliveredQty    int

	AmountByCurrency map[kernel.Currency]float64

	TotalProfit float64
	TotalLoss   float64
	NetProfit   float64
}
