package order

import "fulfillment/internal/core/domain/model/kernel"

// StockAdjustment is the signal the core emits toward the inventory
// collaborator. Quantity is positive for a restock (verified return) and
// negative for a decrement (delivery). The core only emits the signal;
// applying it to warehouse stock is external.
type StockAdjustment struct {
	ProductRef string
	Country    kernel.Country
	Quantity   int
}
