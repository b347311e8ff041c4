// Package kernel provides the primitives shared by all aggregates of the
// dispatch domain:
//   - UUID: entity identifiers
//   - Money: signed EUR amounts with cent precision
//
// Both are immutable value objects whose zero values are either invalid (UUID)
// or a meaningful zero (Money).
package kernel
