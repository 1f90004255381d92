package services

import (
	"log/slog"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
)

// CurrencyConverter converts monetary amounts between Gulf currencies using
// a rate table snapshot. Conversion never fails: a missing rate converts at
// 1, and a non-finite result falls back to the original amount. Both
// degradations are logged so operators can spot a stale or broken table
// without settlement runs erroring out.
type CurrencyConverter struct {
	rates  *RateHolder
	logger *slog.Logger
}

// NewCurrencyConverter creates a converter over the given rate holder.
// A nil logger falls back to slog.Default().
func NewCurrencyConverter(rates *RateHolder, logger *slog.Logger) CurrencyConverter {
	if logger == nil {
		logger = slog.Default()
	}
	return CurrencyConverter{rates: rates, logger: logger}
}

// Convert converts amount from one currency into another.
//
// Identity conversions return the amount bit-for-bit. The conversion is
// amount * rate(from) / rate(to), each missing rate defaulting to 1, and a
// NaN or infinite result (a zero or non-finite rate in the table) falls
// back to the original amount.
func (c CurrencyConverter) Convert(amount float64, from, to kernel.Currency) float64 {
	if from == to {
		return amount
	}

	table := c.rates.Snapshot()
	converted := amount * c.rate(table, from) / c.rate(table, to)
	if math.IsNaN(converted) || math.IsInf(converted, 0) {
		c.logger.Warn("ConversionFallback",
			slog.Float64("amount", amount),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
		)
		return amount
	}
	return converted
}

func (c CurrencyConverter) rate(table RateTable, currency kernel.Currency) float64 {
	rate, ok := table[currency]
	if !ok {
		c.logger.Warn("MissingRate", slog.String("currency", string(currency)))
		return 1
	}
	return rate
}
