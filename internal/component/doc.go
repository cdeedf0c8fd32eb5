// Package component aggregates named source outcomes into an order-stable
// collection and serializes that collection deterministically.
//
// A Set preserves registration order for consumers (debug output, the wire
// schema); Canonical additionally sorts by name so the string fed to the
// hasher is independent of both registration and completion order. Error
// outcomes collapse to the literal token "error" so non-deterministic error
// details never leak into the identifier.
package component
