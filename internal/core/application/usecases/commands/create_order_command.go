package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrInvoiceNumberIsRequired = errors.New("invoiceNumber is required")
	ErrCountryIsRequired       = errors.New("country is required")
	ErrItemsAreRequired        = errors.New("at least one item is required")
)

// CreateOrderItem is one raw order line as received from the outer layer.
// Monetary amounts are in the item's base currency; an empty BaseCurrency
// means the order's target currency.
type CreateOrderItem struct {
	ProductRef        string
	Quantity          int
	UnitPrice         float64
	BaseCurrency      string
	PurchasePrice     float64
	DropshippingPrice float64
}

// CreateOrderCommand represents a request to register a new order.
// Carries the raw, uncanonicalized input; the handler routes country,
// currency, and role strings through the domain's canonicalizers.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	invoiceNumber string
	country       string
	city          string
	phoneCode     string
	items         []CreateOrderItem
	shippingFee   float64
	discount      float64
	total         *float64
	creatorID     kernel.UUID
	creatorRole   string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the identifiers and the presence of invoice, country, and
// items; domain-level validation of amounts happens in the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	invoiceNumber string,
	country string,
	city string,
	phoneCode string,
	items []CreateOrderItem,
	shippingFee float64,
	discount float64,
	total *float64,
	creatorID kernel.UUID,
	creatorRole string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		city:        city,
		phoneCode:   phoneCode,
		shippingFee: shippingFee,
		discount:    discount,
		total:       total,
		creatorRole: creatorRole,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setInvoiceNumber(invoiceNumber),
		orderCommand.setCountry(country),
		orderCommand.setItems(items),
		orderCommand.setCreatorID(creatorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// InvoiceNumber returns the customer-facing invoice number.
func (c CreateOrderCommand) InvoiceNumber() string {
	return c.invoiceNumber
}

// Country returns the raw country text as entered.
func (c CreateOrderCommand) Country() string {
	return c.country
}

// City returns the free-form delivery city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// PhoneCode returns the contact phone's dialing code, possibly empty.
func (c CreateOrderCommand) PhoneCode() string {
	return c.phoneCode
}

// Items returns the raw order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

// ShippingFee returns the locally entered shipping fee.
func (c CreateOrderCommand) ShippingFee() float64 {
	return c.shippingFee
}

// Discount returns the locally entered discount.
func (c CreateOrderCommand) Discount() float64 {
	return c.discount
}

// Total returns the locally entered total, nil when absent.
func (c CreateOrderCommand) Total() *float64 {
	return c.total
}

// CreatorID returns the creating user's identifier.
func (c CreateOrderCommand) CreatorID() kernel.UUID {
	return c.creatorID
}

// CreatorRole returns the creating user's role as raw text.
func (c CreateOrderCommand) CreatorRole() string {
	return c.creatorRole
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setInvoiceNumber(invoiceNumber string) error {
	if invoiceNumber == "" {
		return ErrInvoiceNumberIsRequired
	}

	c.invoiceNumber = invoiceNumber
	return nil
}

func (c *CreateOrderCommand) setCountry(country string) error {
	if country == "" {
		return ErrCountryIsRequired
	}

	c.country = country
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setCreatorID(creatorID kernel.UUID) error {
	if err := creatorID.Validate(); err != nil {
		return err
	}

	c.creatorID = creatorID
	return nil
}

// domainItems converts the raw lines into validated domain items.
func (c CreateOrderCommand) domainItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.items))
	for _, raw := range c.items {
		item, err := order.NewItem(
			raw.ProductRef,
			raw.Quantity,
			raw.UnitPrice,
			kernel.Currency(raw.BaseCurrency),
			raw.PurchasePrice,
			raw.DropshippingPrice,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
