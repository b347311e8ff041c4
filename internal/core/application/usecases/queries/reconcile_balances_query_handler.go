package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ReconcileBalancesQueryHandler reads through a unit of work so the company
// list and every ledger sum come from one transaction.
type ReconcileBalancesQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewReconcileBalancesQueryHandler(uowFactory ports.UnitOfWorkFactory) ReconcileBalancesQueryHandler {
	return ReconcileBalancesQueryHandler{uowFactory: uowFactory}
}

func (h ReconcileBalancesQueryHandler) Handle(
	ctx context.Context,
	query ReconcileBalancesQuery,
) (ReconciliationReport, error) {
	if err := query.Validate(); err != nil {
		return ReconciliationReport{}, err
	}
	if err := query.actor.RequireDispatcher("reconcile balances"); err != nil {
		return ReconciliationReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconciliationReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	companies, err := uow.CompanyRepository().List(ctx)
	if err != nil {
		return ReconciliationReport{}, err
	}

	ledger := services.NewLedger(uow.LedgerRepository(), uow.CompanyRepository())
	report := ReconciliationReport{Companies: make([]CompanyBalance, 0, len(companies))}
	for _, c := range companies {
		drift, driftErr := ledger.RecomputeBalanceFromLedger(ctx, c.ID())
		if driftErr != nil {
			return ReconciliationReport{}, driftErr
		}
		report.Companies = append(report.Companies, CompanyBalance{BalanceDrift: drift, CompanyName: c.Name()})
	}
	return report, nil
}
