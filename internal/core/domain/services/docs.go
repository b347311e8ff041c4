// Package services provides the domain services of the dispatch core. They
// coordinate aggregates through repository ports and are built per unit of
// work, so every call runs inside the caller's transaction.
//
// The package includes:
//   - PenaltyResolver: maps hours before installation to a rejection penalty
//   - RatingCalculator: derives a company's counters and rating from its current orders
//   - AssignmentManager: keeps at most one active assignment per order
//   - Ledger: appends money movements and keeps the stored balance in step
package services
