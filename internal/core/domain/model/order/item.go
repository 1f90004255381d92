package order

import (
	"errors"
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is one order line. Prices are expressed in the item's base currency;
// an empty base currency means the amounts are already in the order's target
// currency. Missing price fields default to 0 and a missing quantity
// defaults to 1, mirroring the upstream records this model ingests.
type Item struct {
	productRef        string
	quantity          int
	unitPrice         float64
	baseCurrency      kernel.Currency
	purchasePrice     float64
	dropshippingPrice float64

	isConstructed bool
}

// NewItem creates an order line with validation.
// A zero or missing quantity defaults to 1; a negative quantity is rejected.
// Prices must be finite and non-negative. baseCurrency may be empty, in
// which case amounts are treated as already being in the target currency.
func NewItem(
	productRef string,
	quantity int,
	unitPrice float64,
	baseCurrency kernel.Currency,
	purchasePrice float64,
	dropshippingPrice float64,
) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setProductRef(productRef),
		item.setQuantity(quantity),
		item.setPrices(unitPrice, purchasePrice, dropshippingPrice),
		item.setBaseCurrency(baseCurrency),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was built via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductRef returns the product reference of the line.
func (i Item) ProductRef() string {
	return i.productRef
}

// Quantity returns the ordered quantity, always at least 1.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the customer-facing price of one unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// BaseCurrency returns the currency the line's prices are expressed in.
// Empty means target currency.
func (i Item) BaseCurrency() kernel.Currency {
	return i.baseCurrency
}

// PurchasePrice returns what the company pays per unit.
func (i Item) PurchasePrice() float64 {
	return i.purchasePrice
}

// DropshippingPrice returns the blended per-unit price a dropshipper pays
// for the primary unit of an order.
func (i Item) DropshippingPrice() float64 {
	return i.dropshippingPrice
}

func (i *Item) setProductRef(productRef string) error {
	if productRef == "" {
		return errs.NewValueIsRequiredError("productRef")
	}
	i.productRef = productRef
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is negative", quantity))
	}
	if quantity == 0 {
		quantity = 1
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrices(unitPrice, purchasePrice, dropshippingPrice float64) error {
	for name, price := range map[string]float64{
		"unitPrice":         unitPrice,
		"purchasePrice":     purchasePrice,
		"dropshippingPrice": dropshippingPrice,
	} {
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name+" is invalid",
				fmt.Errorf("%v is not a non-negative finite amount", price))
		}
	}

	i.unitPrice = unitPrice
	i.purchasePrice = purchasePrice
	i.dropshippingPrice = dropshippingPrice
	return nil
}

func (i *Item) setBaseCurrency(baseCurrency kernel.Currency) error {
	if baseCurrency == "" {
		return nil
	}
	if err := baseCurrency.Validate(); err != nil {
		return err
	}
	i.baseCurrency = baseCurrency
	return nil
}
