// Package services provides stateless domain services that operate across
// order aggregates: currency conversion over a refreshable rate table,
// per-order settlement breakdowns, and report aggregation over filtered
// order collections.
//
// The package includes:
//   - CurrencyConverter: non-failing conversion between Gulf currencies
//   - SettlementCalculator: role-dependent profit/commission breakdown
//   - SummaryAggregator: report totals over a filtered order collection
//   - RateHolder: atomic publication of refreshed rate tables
//
// Every service takes a complete snapshot and returns a result; none
// retain mutable state or perform I/O.
package services
