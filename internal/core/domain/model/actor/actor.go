// Package actor models the authorization capability resolved once per request
// by the identity provider and handed to every engine operation.
package actor

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Actor is the caller of an engine operation. A dispatcher may act on any
// order; a company user acts only on behalf of its single company.
type Actor struct {
	userID     kernel.UUID
	companyID  *kernel.UUID
	dispatcher bool
}

// NewDispatcher builds a dispatcher (superuser) actor.
func NewDispatcher(userID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, dispatcher: true}, nil
}

// NewCompanyUser builds an actor affiliated with exactly one company.
func NewCompanyUser(userID, companyID kernel.UUID) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	if err := companyID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{userID: userID, companyID: &companyID}, nil
}

func (a Actor) UserID() kernel.UUID {
	return a.userID
}

// CompanyID returns the affiliation, or nil for a dispatcher without one.
func (a Actor) CompanyID() *kernel.UUID {
	return a.companyID
}

func (a Actor) IsDispatcher() bool {
	return a.dispatcher
}

// Validate reports whether the actor was built through a constructor.
func (a Actor) Validate() error {
	if err := a.userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}

// RequireDispatcher fails with ForbiddenError unless the actor is a dispatcher.
func (a Actor) RequireDispatcher(action string) error {
	if !a.dispatcher {
		return errs.NewForbiddenError(action)
	}
	return nil
}

// CanActFor reports whether the actor may operate on behalf of companyID.
func (a Actor) CanActFor(companyID kernel.UUID) bool {
	if a.dispatcher {
		return true
	}
	return a.companyID != nil && a.companyID.IsEqual(companyID)
}

// RequireActFor is CanActFor returning ForbiddenError.
func (a Actor) RequireActFor(companyID kernel.UUID, action string) error {
	if !a.CanActFor(companyID) {
		return errs.NewForbiddenError(action + " on behalf of company " + companyID.String())
	}
	return nil
}
