// Package order models the installation order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding customer, schedule, holder and money fields
//   - Status: the state machine (inbox, open_pool, assigned, in_progress, finished,
//     not_possible, storno)
//   - Schedule and TimeOfDay: the installation window
//   - Reason: who is to blame, with text and photo required for negative outcomes
//
// Key business rules:
//   - Only inbox and open_pool orders may receive a fresh assignment
//   - The current company is set exactly while the order is held
//   - Rejection returns the order to the pool and feeds the penalty into the bonus pot
//   - Finishing pays the base price plus the whole bonus pot and empties the pot
package order
