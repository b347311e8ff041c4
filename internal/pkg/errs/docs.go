// Package errs provides the error taxonomy of the dispatch application.
//
// Every kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrConflict) usable with errors.Is
//   - a struct type carrying the details of the failure
//   - constructor functions, with and without cause where a cause makes sense
//   - Error() for the human-readable detail and Unwrap() returning the sentinel
//
// Engine failures map onto the kinds as follows:
//   - ObjectNotFoundError: a referenced entity is missing
//   - InvalidStateError: the operation is not valid for the current order status
//   - ConflictError: an active assignment already exists (the race was lost)
//   - AlreadyTakenError: a pooled order is gone; also matches ErrConflict
//   - NotOwnerError: the calling company does not hold the order
//   - AlreadyFinishedError: the order is finished
//   - DuplicateDocumentError: uploaded content hashes to a known document
//   - ForbiddenError: the actor lacks the role for the operation
//
// KindOf reduces any wrapped error to a stable kind string for transports.
package errs
