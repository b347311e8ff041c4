package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrReconcileBalancesQueryIsNotConstructed = errors.New(
	"ReconcileBalancesQuery must be created via NewReconcileBalancesQuery constructor",
)

// ReconcileBalancesQuery compares every company's stored balance with the sum
// of its ledger entries.
type ReconcileBalancesQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

func NewReconcileBalancesQuery(a actor.Actor) (ReconcileBalancesQuery, error) {
	if err := a.Validate(); err != nil {
		return ReconcileBalancesQuery{}, err
	}
	return ReconcileBalancesQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q ReconcileBalancesQuery) Validate() error {
	return q.guard.Validate(ErrReconcileBalancesQueryIsNotConstructed)
}

type CompanyBalance struct {
	services.BalanceDrift
	CompanyName string
}

type ReconciliationReport struct {
	Companies []CompanyBalance
}

// Drifting returns the companies whose stored balance disagrees with the ledger.
func (r ReconciliationReport) Drifting() []CompanyBalance {
	var out []CompanyBalance
	for _, c := range r.Companies {
		if !c.IsBalanced() {
			out = append(out, c)
		}
	}
	return out
}
