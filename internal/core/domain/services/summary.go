package services

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StatusOpen selects every non-terminal status when used as Filter.Status.
const StatusOpen = "open"

// Filter narrows the order collection a summary is built over. String
// fields are canonicalized before matching so spelling variants of the
// same country or status land in the same bucket. Zero values mean "any".
type Filter struct {
	Country string
	// Status is either StatusOpen (all non-terminal statuses) or a
	// specific status in any accepted spelling.
	Status   string
	AgentID  *kernel.UUID
	DriverID *kernel.UUID
	From     *time.Time
	To       *time.Time
}

// Summary is the aggregate report over a filtered order collection.
// Monetary amounts are never summed across currencies: delivered totals
// are bucketed per target currency, while the profit figures sum
// per-order net profits already expressed in each order's own currency.
type Summary struct {
	TotalOrders int
	TotalQty    int

	DeliveredOrders int
	DeliveredQty    int

	AmountByCurrency map[kernel.Currency]float64

	TotalProfit float64
	TotalLoss   float64
	NetProfit   float64
}

// SummaryAggregator folds a collection of orders into report totals,
// settling each delivered order to obtain its net profit.
type SummaryAggregator struct {
	settlement SettlementCalculator
}

// NewSummaryAggregator creates an aggregator over the given calculator.
func NewSummaryAggregator(settlement SettlementCalculator) SummaryAggregator {
	return SummaryAggregator{settlement: settlement}
}

// Aggregate builds the summary over the orders matching the filter.
func (a SummaryAggregator) Aggregate(orders []*order.Order, filter Filter) Summary {
	summary := Summary{AmountByCurrency: map[kernel.Currency]float64{}}

	for _, o := range orders {
		if !matches(o, filter) {
			continue
		}

		summary.TotalOrders++
		summary.TotalQty += o.TotalQuantity()

		if o.Status() != order.Delivered {
			continue
		}
		summary.DeliveredOrders++
		summary.DeliveredQty += o.TotalQuantity()

		breakdown := a.settlement.Settle(o)
		summary.AmountByCurrency[breakdown.Target] += breakdown.Total

		summary.NetProfit += breakdown.NetProfit
		if breakdown.NetProfit >= 0 {
			summary.TotalProfit += breakdown.NetProfit
		} else {
			summary.TotalLoss -= breakdown.NetProfit
		}
	}

	return summary
}

func matches(o *order.Order, filter Filter) bool {
	if filter.Country != "" {
		if o.Country() != kernel.CanonicalCountry(filter.Country) {
			return false
		}
	}

	if filter.Status != "" && !matchesStatus(o.Status(), filter.Status) {
		return false
	}

	if filter.AgentID != nil {
		if o.CreatedBy().Role() != order.RoleAgent || !o.CreatedBy().ID().IsEqual(*filter.AgentID) {
			return false
		}
	}

	if filter.DriverID != nil {
		if o.DriverID() == nil || !o.DriverID().IsEqual(*filter.DriverID) {
			return false
		}
	}

	if filter.From != nil && o.CreatedAt().Before(*filter.From) {
		return false
	}
	if filter.To != nil && o.CreatedAt().After(*filter.To) {
		return false
	}

	return true
}

func matchesStatus(status order.Status, wanted string) bool {
	if wanted == StatusOpen {
		return !status.IsTerminal()
	}
	parsed, err := order.ParseStatus(wanted)
	if err != nil {
		return false
	}
	return status == parsed
}
