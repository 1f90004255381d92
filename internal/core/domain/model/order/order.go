package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// InvestorShare is a pre-agreed profit share credited to a capital investor
// funding an order or batch. It is a settlement input carried on the order.
type InvestorShare struct {
	InvestorID kernel.UUID
	Amount     float64
	Pending    bool
}

// Order is the aggregate root of the fulfillment domain. It manages the
// shipment lifecycle from creation through driver delivery to a terminal
// outcome, and carries every input the settlement calculator needs.
//
// Order maintains these invariants:
//   - the shipment status is always a member of the fixed state set
//   - once delivered, the status, driver, and driver commission are frozen
//   - a verified return implies a prior submission and a cancelled/returned status
//   - it can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated methods.
type Order struct {
	id            kernel.UUID
	invoiceNumber string

	country   kernel.Country
	city      string
	phoneCode string

	items       []Item
	shippingFee float64
	discount    float64

	// total is the authoritative order total when present; settlement falls
	// back to a derived total when it is absent or non-finite.
	total *float64

	status      Status
	createdAt   time.Time
	updatedAt   time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time

	driverID         *kernel.UUID
	driverCommission float64
	assignedManager  *kernel.UUID

	createdBy Creator

	investorProfit  *InvestorShare
	commissionerID  *kernel.UUID
	referenceProfit float64

	returnState ReturnState

	isConstructed bool
}

// NewOrder creates a fresh order in Pending status.
//
// The country has already been canonicalized by the caller (kernel.CanonicalCountry);
// phoneCode may be empty when the contact phone matches the declared country.
// total, when non-nil, is the authoritative customer-facing total as entered
// locally; nil means settlement derives it from the items.
func NewOrder(
	id kernel.UUID,
	invoiceNumber string,
	country kernel.Country,
	city string,
	phoneCode string,
	items []Item,
	shippingFee float64,
	discount float64,
	total *float64,
	createdBy Creator,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		city:          city,
		phoneCode:     phoneCode,
		total:         total,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setInvoiceNumber(invoiceNumber),
		order.setCountry(country),
		order.setItems(items),
		order.setCharges(shippingFee, discount),
		order.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// OrderSnapshot carries every persisted field of an order for RestoreOrder.
type OrderSnapshot struct {
	ID            kernel.UUID
	InvoiceNumber string

	Country   kernel.Country
	City      string
	PhoneCode string

	Items       []Item
	ShippingFee float64
	Discount    float64
	Total       *float64

	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	DriverID         *kernel.UUID
	DriverCommission float64
	AssignedManager  *kernel.UUID

	CreatedBy Creator

	InvestorProfit  *InvestorShare
	CommissionerID  *kernel.UUID
	ReferenceProfit float64

	ReturnState ReturnState
}

// RestoreOrder reconstructs an order aggregate from persistence, preserving
// its lifecycle state. The restored order behaves identically to one that
// reached the same state through domain operations.
func RestoreOrder(snapshot OrderSnapshot) (*Order, error) {
	order := &Order{
		city:             snapshot.City,
		phoneCode:        snapshot.PhoneCode,
		total:            snapshot.Total,
		createdAt:        snapshot.CreatedAt,
		updatedAt:        snapshot.UpdatedAt,
		shippedAt:        snapshot.ShippedAt,
		deliveredAt:      snapshot.DeliveredAt,
		driverCommission: snapshot.DriverCommission,
		investorProfit:   snapshot.InvestorProfit,
		referenceProfit:  snapshot.ReferenceProfit,
		returnState:      snapshot.ReturnState,
		isConstructed:    true,
	}

	if err := errors.Join(
		order.setID(snapshot.ID),
		order.setInvoiceNumber(snapshot.InvoiceNumber),
		order.setCountry(snapshot.Country),
		order.setItems(snapshot.Items),
		order.setCharges(snapshot.ShippingFee, snapshot.Discount),
		order.setCreatedBy(snapshot.CreatedBy),
		order.setStatus(snapshot.Status),
		order.setOptionalID("driverID", snapshot.DriverID, &order.driverID),
		order.setOptionalID("assignedManager", snapshot.AssignedManager, &order.assignedManager),
		order.setOptionalID("commissionerID", snapshot.CommissionerID, &order.commissionerID),
	); err != nil {
		return nil, err
	}

	if order.returnState.IsVerified() && !order.status.IsReturnEligible() {
		return nil, errs.NewValueIsInvalidErrorWithCause("returnState is invalid",
			fmt.Errorf("verified return on %s order", order.status))
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// InvoiceNumber returns the customer-facing invoice number.
func (o *Order) InvoiceNumber() string {
	return o.invoiceNumber
}

// Country returns the canonical delivery country.
func (o *Order) Country() kernel.Country {
	return o.country
}

// City returns the free-form delivery city.
func (o *Order) City() string {
	return o.city
}

// PhoneCode returns the contact phone's international dialing code.
func (o *Order) PhoneCode() string {
	return o.phoneCode
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// ShippingFee returns the locally entered shipping fee.
func (o *Order) ShippingFee() float64 {
	return o.shippingFee
}

// Discount returns the locally entered discount.
func (o *Order) Discount() float64 {
	return o.discount
}

// Total returns the authoritative total, nil when settlement must derive it.
func (o *Order) Total() *float64 {
	return o.total
}

// Status returns the current shipment status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ShippedAt returns when the order first went in transit, nil before that.
func (o *Order) ShippedAt() *time.Time {
	return o.shippedAt
}

// DeliveredAt returns when the order was delivered, nil before that.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// DriverID returns the assigned driver's ID, nil if unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// DriverCommission returns the per-order driver commission, already in the
// order's target currency.
func (o *Order) DriverCommission() float64 {
	return o.driverCommission
}

// AssignedManager returns the managing user's ID, nil if unassigned.
func (o *Order) AssignedManager() *kernel.UUID {
	return o.assignedManager
}

// CreatedBy returns who created the order.
func (o *Order) CreatedBy() Creator {
	return o.createdBy
}

// InvestorProfit returns the investor share input, nil when no investor
// funds the order.
func (o *Order) InvestorProfit() *InvestorShare {
	return o.investorProfit
}

// CommissionerID returns the referring commissioner's ID, nil when none.
func (o *Order) CommissionerID() *kernel.UUID {
	return o.commissionerID
}

// ReferenceProfit returns the flat credit attributed to a referring party.
func (o *Order) ReferenceProfit() float64 {
	return o.referenceProfit
}

// ReturnState returns the return-verification workflow state.
func (o *Order) ReturnState() ReturnState {
	return o.returnState
}

// TotalQuantity sums per-line quantities across all items.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.items {
		total += item.Quantity()
	}
	return total
}

// DisplayStatus returns the label dashboards show. It is the canonical
// status key except for the composite "return_verified" and
// "awaiting_verification" labels, which only exist as projections of the
// return workflow.
func (o *Order) DisplayStatus() string {
	if o.returnState.IsVerified() {
		return "return_verified"
	}
	if o.returnState.AwaitingVerification() {
		return "awaiting_verification"
	}
	return o.status.String()
}

// AwaitingReturnVerification reports a submitted but unverified return.
func (o *Order) AwaitingReturnVerification() bool {
	return o.returnState.AwaitingVerification()
}

// ReturnVerified reports a completed return verification.
func (o *Order) ReturnVerified() bool {
	return o.returnState.IsVerified()
}

// ChangeStatus applies a shipment-status transition.
//
// Rules:
//   - the requested status must be a member of the fixed state set
//   - a delivered order is frozen: any move away returns a LockedError, and
//     delivered -> delivered is a no-op
//   - once a return is submitted the order is pinned to the return-eligible
//     statuses; a verified return must never reopen into the live lifecycle
//   - any other non-delivered status may move to any other status
//   - the first entry into InTransit stamps ShippedAt, entry into Delivered
//     stamps DeliveredAt
//
// On the transition into Delivered the returned adjustments carry one
// negative stock decrement per order line for the caller to forward to the
// inventory collaborator.
func (o *Order) ChangeStatus(to Status, now time.Time) ([]StockAdjustment, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}

	if o.status == Delivered {
		if to != Delivered {
			return nil, NewLockedError(o.id.String(), "shipmentStatus")
		}
		return nil, nil
	}

	if o.returnState.IsSubmitted() && !to.IsReturnEligible() {
		return nil, NewInvalidStateError(o.id.String(),
			fmt.Sprintf("cannot move to %s once a return has been submitted", to))
	}

	var adjustments []StockAdjustment
	if to == InTransit && o.shippedAt == nil {
		shippedAt := now
		o.shippedAt = &shippedAt
	}
	if to == Delivered {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
		for _, item := range o.items {
			adjustments = append(adjustments, StockAdjustment{
				ProductRef: item.ProductRef(),
				Country:    o.country,
				Quantity:   -item.Quantity(),
			})
		}
	}

	o.status = to
	o.updatedAt = now
	return adjustments, nil
}

// AssignDriver assigns a delivery driver with a per-order commission rate.
// It does not change the shipment status. Delivered orders are frozen and
// reject the assignment with a LockedError.
func (o *Order) AssignDriver(driverID kernel.UUID, commission float64, now time.Time) error {
	if o.status == Delivered {
		return NewLockedError(o.id.String(), "deliveryBoy")
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := validAmount("driverCommission", commission); err != nil {
		return err
	}

	o.driverID = &driverID
	o.driverCommission = commission
	o.updatedAt = now
	return nil
}

// SetDriverCommission overrides the driver commission for this order.
// Rejected with a LockedError on delivered orders.
func (o *Order) SetDriverCommission(commission float64, now time.Time) error {
	if o.status == Delivered {
		return NewLockedError(o.id.String(), "driverCommission")
	}
	if err := validAmount("driverCommission", commission); err != nil {
		return err
	}

	o.driverCommission = commission
	o.updatedAt = now
	return nil
}

// AssignManager sets the managing user for this order.
func (o *Order) AssignManager(managerID kernel.UUID, now time.Time) error {
	if err := managerID.Validate(); err != nil {
		return err
	}

	o.assignedManager = &managerID
	o.updatedAt = now
	return nil
}

// SubmitReturn records the driver's return submission.
//
// Only cancelled or returned orders can enter the return workflow; anything
// else is an InvalidStateError. A repeat submission while the previous one
// is still unverified is a no-op, not an error, since drivers may retry.
func (o *Order) SubmitReturn(reason string, now time.Time) error {
	if !o.status.IsReturnEligible() {
		return NewInvalidStateError(o.id.String(),
			fmt.Sprintf("shipment status %s is not eligible for return submission", o.status))
	}

	newState, changed := o.returnState.submit(reason, now)
	if changed {
		o.returnState = newState
		o.updatedAt = now
	}
	return nil
}

// VerifyReturn confirms a submitted return.
//
// Fails with an InvalidStateError when no submission exists and with an
// AlreadyVerifiedError when already verified: verification must never
// restock twice. On success the returned adjustments carry exactly one
// positive restock per order line, scoped to the order country.
func (o *Order) VerifyReturn(verifier kernel.UUID, now time.Time) ([]StockAdjustment, error) {
	if !o.status.IsReturnEligible() {
		return nil, NewInvalidStateError(o.id.String(),
			fmt.Sprintf("shipment status %s is not eligible for return verification", o.status))
	}

	newState, err := o.returnState.verify(o.id.String(), verifier, now)
	if err != nil {
		return nil, err
	}

	o.returnState = newState
	o.updatedAt = now

	adjustments := make([]StockAdjustment, 0, len(o.items))
	for _, item := range o.items {
		adjustments = append(adjustments, StockAdjustment{
			ProductRef: item.ProductRef(),
			Country:    o.country,
			Quantity:   item.Quantity(),
		})
	}
	return adjustments, nil
}

// SetInvestorProfit attaches an investor share to the order.
func (o *Order) SetInvestorProfit(share InvestorShare, now time.Time) error {
	if err := share.InvestorID.Validate(); err != nil {
		return err
	}
	if err := validAmount("investorProfit", share.Amount); err != nil {
		return err
	}

	o.investorProfit = &share
	o.updatedAt = now
	return nil
}

// SetCommissioner attaches the referring commissioner earning the flat
// per-order finder's fee.
func (o *Order) SetCommissioner(commissionerID kernel.UUID, now time.Time) error {
	if err := commissionerID.Validate(); err != nil {
		return err
	}

	o.commissionerID = &commissionerID
	o.updatedAt = now
	return nil
}

// SetReferenceProfit attaches the flat credit for a referring party.
func (o *Order) SetReferenceProfit(amount float64, now time.Time) error {
	if err := validAmount("referenceProfit", amount); err != nil {
		return err
	}

	o.referenceProfit = amount
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	o.invoiceNumber = invoiceNumber
	return nil
}

func (o *Order) setCountry(country kernel.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	o.country = country
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setCharges(shippingFee, discount float64) error {
	if err := errors.Join(
		validAmount("shippingFee", shippingFee),
		validAmount("discount", discount),
	); err != nil {
		return err
	}
	o.shippingFee = shippingFee
	o.discount = discount
	return nil
}

func (o *Order) setCreatedBy(createdBy Creator) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setOptionalID(name string, id *kernel.UUID, target **kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	*target = id
	return nil
}

// validAmount rejects NaN, infinite, and negative monetary inputs.
func validAmount(name string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name+" is invalid",
			fmt.Errorf("%v is not a non-negative finite amount", amount))
	}
	return nil
}
