// Package errs defines the shared validation and lookup error types used
// across the fulfillment domain, use case, and adapter layers.
//
// Every type pairs a package-level sentinel (for errors.Is branching) with
// a struct carrying the offending parameter name (for errors.As and for
// building user-facing messages):
//   - ValueIsRequiredError: a mandatory input was absent
//   - ValueIsInvalidError: an input was present but unusable
//   - ValueIsOutOfRangeError: a numeric input fell outside its bounds
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//   - VersionIsInvalidError: an aggregate version failed a consistency check
//
// Each comes with a plain constructor and a WithCause variant; causes are
// reachable through Unwrap, so errors.Is and errors.As see the whole chain.
// The HTTP adapter relies on these types to map domain failures onto
// status codes without string matching.
package errs
