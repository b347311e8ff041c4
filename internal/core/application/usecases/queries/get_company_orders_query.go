package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCompanyOrdersQueryIsNotConstructed = errors.New(
	"GetCompanyOrdersQuery must be created via NewGetCompanyOrdersQuery constructor",
)

// GetCompanyOrdersQuery lists the orders a company currently holds.
type GetCompanyOrdersQuery struct {
	companyID kernel.UUID
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewGetCompanyOrdersQuery(companyID kernel.UUID, a actor.Actor) (GetCompanyOrdersQuery, error) {
	if err := errors.Join(companyID.Validate(), a.Validate()); err != nil {
		return GetCompanyOrdersQuery{}, err
	}
	return GetCompanyOrdersQuery{companyID: companyID, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCompanyOrdersQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q GetCompanyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyOrdersQueryIsNotConstructed)
}
