package services

import (
	"math"

	"github.com/shopspring/decimal"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// agentCommissionRate is the flat agent commission applied to the order
// total. Payout tooling treats balances as accrued at this rate.
const agentCommissionRate = 0.12

// sarPerCurrency is the fixed SAR pivot table used only for the
// commissioner finder's fee. It is deliberately distinct from the live
// rate table: the fee is a flat amount agreed per referral and must not
// move with daily rates.
var sarPerCurrency = map[kernel.Currency]float64{
	kernel.SAR: 1,
	kernel.AED: 0.98,
	kernel.KWD: 0.082,
	kernel.BHD: 0.10,
	kernel.OMR: 0.103,
	kernel.QAR: 0.97,
}

// Breakdown is the full per-order financial settlement, every amount
// expressed in the order's target currency.
type Breakdown struct {
	Target           kernel.Currency
	Total            float64
	CompanyCost      float64
	DriverCommission float64

	AgentAmount     float64
	InvestorAmount  float64
	CommissionerFee float64
	ReferenceAmount float64

	// DropshipPrice and DropshipperEarning are populated only for
	// dropshipper-created orders.
	DropshipPrice      float64
	DropshipperPays    float64
	DropshipperEarning float64

	NetProfit float64
}

// SettlementCalculator computes the profit/commission breakdown for one
// order. It is pure given the order snapshot and the converter's rate
// table: no I/O, no retained state.
//
// The breakdown branches on the creator's role. Dropshipper-created orders
// settle against the dropshipping price of the primary item (the item with
// the highest converted dropshipping price, first wins on ties); all other
// roles settle against the order total with role-specific deductions.
type SettlementCalculator struct {
	converter CurrencyConverter
}

// NewSettlementCalculator creates a calculator over the given converter.
func NewSettlementCalculator(converter CurrencyConverter) SettlementCalculator {
	return SettlementCalculator{converter: converter}
}

// Settle computes the settlement breakdown for the order.
func (s SettlementCalculator) Settle(o *order.Order) Breakdown {
	target := o.Country().Currency()
	local := target
	if phoneCurrency, ok := kernel.CurrencyForPhoneCode(o.PhoneCode()); ok {
		local = phoneCurrency
	}

	total := s.orderTotal(o, local, target)
	companyCost := s.companyCost(o, target)
	driverCommission := o.DriverCommission()

	breakdown := Breakdown{
		Target:           target,
		Total:            total,
		CompanyCost:      companyCost,
		DriverCommission: driverCommission,
	}

	if o.CreatedBy().Role() == order.RoleDropshipper {
		s.settleDropshipper(o, target, &breakdown)
		return breakdown
	}

	if o.CreatedBy().Role() == order.RoleAgent {
		breakdown.AgentAmount = roundHalfUp(total*agentCommissionRate, 0)
	}
	if investor := o.InvestorProfit(); investor != nil {
		breakdown.InvestorAmount = investor.Amount
	}
	if o.CommissionerID() != nil {
		breakdown.CommissionerFee = roundHalfUp(2*sarPerCurrency[target], 3)
	}
	breakdown.ReferenceAmount = o.ReferenceProfit()

	breakdown.NetProfit = total - companyCost - driverCommission -
		breakdown.AgentAmount - breakdown.InvestorAmount -
		breakdown.CommissionerFee - breakdown.ReferenceAmount
	return breakdown
}

// settleDropshipper fills the dropshipper branch: the dropshipper pays the
// dropshipping price for one unit of the primary item plus the purchase
// price for everything else, and keeps whatever the customer total exceeds
// that by.
func (s SettlementCalculator) settleDropshipper(o *order.Order, target kernel.Currency, breakdown *Breakdown) {
	items := o.Items()
	primary := 0
	primaryPrice := math.Inf(-1)
	for i, item := range items {
		price := s.itemAmount(item.DropshippingPrice(), item, target)
		if price > primaryPrice {
			primary = i
			primaryPrice = price
		}
	}

	purchaseForRest := 0.0
	for i, item := range items {
		quantity := item.Quantity()
		if i == primary {
			quantity--
		}
		purchaseForRest += s.itemAmount(item.PurchasePrice(), item, target) * float64(quantity)
	}

	breakdown.DropshipPrice = primaryPrice
	breakdown.DropshipperPays = primaryPrice + purchaseForRest
	breakdown.DropshipperEarning = math.Max(0, breakdown.Total-breakdown.DropshipperPays)
	breakdown.NetProfit = breakdown.DropshipperPays - breakdown.CompanyCost - breakdown.DriverCommission
}

// orderTotal resolves the customer-facing total: the locally entered total
// when present and convertible, otherwise derived from the items and
// charges, floored at zero.
func (s SettlementCalculator) orderTotal(o *order.Order, local, target kernel.Currency) float64 {
	if entered := o.Total(); entered != nil {
		converted := s.converter.Convert(*entered, local, target)
		if !math.IsNaN(converted) && !math.IsInf(converted, 0) {
			return converted
		}
	}

	subtotal := 0.0
	for _, item := range o.Items() {
		subtotal += s.itemAmount(item.UnitPrice(), item, target) * float64(item.Quantity())
	}
	subtotal += s.converter.Convert(o.ShippingFee(), local, target)
	subtotal -= s.converter.Convert(o.Discount(), local, target)
	return math.Max(0, subtotal)
}

// companyCost is the full purchase cost of every unit on the order.
func (s SettlementCalculator) companyCost(o *order.Order, target kernel.Currency) float64 {
	cost := 0.0
	for _, item := range o.Items() {
		cost += s.itemAmount(item.PurchasePrice(), item, target) * float64(item.Quantity())
	}
	return cost
}

// itemAmount converts a per-item amount from the item's base currency
// (defaulting to target) into target.
func (s SettlementCalculator) itemAmount(amount float64, item order.Item, target kernel.Currency) float64 {
	base := item.BaseCurrency()
	if base == "" {
		base = target
	}
	return s.converter.Convert(amount, base, target)
}

// roundHalfUp rounds to the given number of decimal places with half-up
// semantics, matching how the accounting side rounds these figures.
func roundHalfUp(amount float64, places int32) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(places).Float64()
	return rounded
}
