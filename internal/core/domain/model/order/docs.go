// Package order provides the Order aggregate root and the business rules of
// the shipment lifecycle.
//
// The package includes:
//   - Order: the aggregate root managing identity, order lines, lifecycle
//     timestamps, driver assignment, and settlement inputs
//   - Status: the fixed shipment-status set with canonicalized parsing of
//     historical alias spellings
//   - ReturnState: the two-phase return-verification workflow layered on
//     cancelled/returned orders
//
// Key business rules:
//   - orders start in Pending; statuses move freely between non-delivered
//     states, and into Delivered from any state
//   - once delivered, the status, driver, and driver commission are frozen
//   - a return must be submitted by the driver and verified by a manager or
//     owner before stock is restored; verification is idempotent and can
//     never restock twice
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
