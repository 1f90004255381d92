// Package kernel provides core domain primitives used throughout the
// fulfillment domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Country: a canonical delivery-country key parsed from free-form text
//   - Currency: ISO-style currency codes plus the country and phone-code mappings
//
// These primitives enforce domain invariants at the boundary so that the rest
// of the model never compares raw, unnormalized strings. They are immutable
// and safe for concurrent use.
package kernel
