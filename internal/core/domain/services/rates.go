package services

import (
	"sync/atomic"

	"fulfillment/internal/core/domain/model/kernel"
)

// RateTable maps a source currency to its exchange rate into the table's
// target currency. A missing entry is treated as a rate of 1 by the
// converter rather than an error.
type RateTable map[kernel.Currency]float64

// clone returns an independent copy so a stored table can never be mutated
// by its producer after publication.
func (t RateTable) clone() RateTable {
	copied := make(RateTable, len(t))
	for currency, rate := range t {
		copied[currency] = rate
	}
	return copied
}

// RateHolder publishes the latest exchange-rate table to concurrent readers.
// Conversions read a consistent snapshot while a background job swaps in
// refreshed tables.
type RateHolder struct {
	table atomic.Pointer[RateTable]
}

// NewRateHolder creates a holder seeded with the given table. A nil table
// is stored as empty, which makes every conversion fall back to rate 1.
func NewRateHolder(table RateTable) *RateHolder {
	holder := &RateHolder{}
	holder.Replace(table)
	return holder
}

// Replace atomically swaps in a new table.
func (h *RateHolder) Replace(table RateTable) {
	if table == nil {
		table = RateTable{}
	}
	snapshot := table.clone()
	h.table.Store(&snapshot)
}

// Snapshot returns the current table. Callers must not mutate it.
func (h *RateHolder) Snapshot() RateTable {
	return *h.table.Load()
}
