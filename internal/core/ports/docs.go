// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories bound to a unit of work, the blob store and the clock.
//
// Repository Get methods return errs.ObjectNotFoundError when the row is
// missing. GetForUpdate variants take an exclusive row lock held until the
// enclosing transaction ends.
package ports
