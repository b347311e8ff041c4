package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an installation order.
//
//	Inbox ──┬──> OpenPool ──(take)──┐
//	        │       ^               v
//	        └──(assign)────────> Assigned ──> InProgress ──┬──> Finished
//	                │  (reject)     │              │       ├──> NotPossible
//	                └───────────────┘              │       └──> Storno
//	                        ^                      │
//	                        └──────(reject)────────┘
//
// Inbox and OpenPool are the only states from which a fresh assignment may be
// made. Finished, NotPossible and Storno are terminal.
type Status int

const (
	Unknown Status = iota
	Inbox
	OpenPool
	Assigned
	InProgress
	Finished
	NotPossible
	Storno
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "unknown",
		Inbox:       "inbox",
		OpenPool:    "open_pool",
		Assigned:    "assigned",
		InProgress:  "in_progress",
		Finished:    "finished",
		NotPossible: "not_possible",
		Storno:      "storno",
	}
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Storno {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Finished || s == NotPossible || s == Storno
}

// IsNegativeOutcome reports the terminal states that require a reason and a photo.
func (s Status) IsNegativeOutcome() bool {
	return s == NotPossible || s == Storno
}

// IsAssignable reports whether a fresh assignment may be made from s.
func (s Status) IsAssignable() bool {
	return s == Inbox || s == OpenPool
}

// IsHeld reports the states in which exactly one company holds the order.
func (s Status) IsHeld() bool {
	return s == Assigned || s == InProgress || s.IsTerminal()
}

// ValidateCanHaveCompany checks that the holder reference agrees with the status.
func (s Status) ValidateCanHaveCompany(hasCompany bool) error {
	if hasCompany && !s.IsHeld() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have a company", s))
	}
	if !hasCompany && s.IsHeld() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have no company", s))
	}
	return nil
}

func (s Status) Assign() (Status, error) {
	if !s.IsAssignable() {
		return Unknown, errs.NewInvalidStateError("assign order", s.String())
	}
	return Assigned, nil
}

func (s Status) Publish() (Status, error) {
	if s != Inbox {
		return Unknown, errs.NewInvalidStateError("publish order to pool", s.String())
	}
	return OpenPool, nil
}

func (s Status) Reject() (Status, error) {
	if s != Assigned && s != InProgress {
		return Unknown, errs.NewInvalidStateError("reject order", s.String())
	}
	return OpenPool, nil
}

func (s Status) Start() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewInvalidStateError("start order", s.String())
	}
	return InProgress, nil
}

func (s Status) Finish() (Status, error) {
	if s != Assigned && s != InProgress {
		return Unknown, errs.NewInvalidStateError("finish order", s.String())
	}
	return Finished, nil
}

// Fail moves a held, open order to a negative terminal state.
func (s Status) Fail(target Status) (Status, error) {
	if !target.IsNegativeOutcome() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a negative outcome", target))
	}
	if s != Assigned && s != InProgress {
		return Unknown, errs.NewInvalidStateError("close order as "+target.String(), s.String())
	}
	return target, nil
}
