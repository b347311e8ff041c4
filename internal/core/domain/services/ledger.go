package services

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/ports"
)

// Ledger appends entries and moves the stored company balance by the same
// amount. Both writes share the caller's transaction.
type Ledger struct {
	entries   ports.LedgerRepository
	companies ports.CompanyRepository
}

func NewLedger(entries ports.LedgerRepository, companies ports.CompanyRepository) Ledger {
	return Ledger{entries: entries, companies: companies}
}

func (l Ledger) Append(ctx context.Context, p ledger.NewEntryParams) (*ledger.Entry, error) {
	if p.ID.IsZero() {
		p.ID = kernel.NewUUID()
	}

	entry, err := ledger.NewEntry(p)
	if err != nil {
		return nil, err
	}

	if err = l.entries.Add(ctx, entry); err != nil {
		return nil, err
	}
	if err = l.companies.AdjustBalance(ctx, entry.CompanyID(), entry.Amount()); err != nil {
		return nil, err
	}
	return entry, nil
}

// BalanceDrift compares the stored balance with the sum of ledger entries.
type BalanceDrift struct {
	CompanyID kernel.UUID
	Stored    kernel.Money
	Computed  kernel.Money
}

func (d BalanceDrift) IsBalanced() bool {
	return d.Stored.Equal(d.Computed)
}

// Difference is stored minus computed.
func (d BalanceDrift) Difference() kernel.Money {
	return d.Stored.Sub(d.Computed)
}

// RecomputeBalanceFromLedger sums the company's entries from scratch and
// reports how far the stored balance is off. It never writes.
func (l Ledger) RecomputeBalanceFromLedger(ctx context.Context, companyID kernel.UUID) (BalanceDrift, error) {
	comp, err := l.companies.Get(ctx, companyID)
	if err != nil {
		return BalanceDrift{}, err
	}

	sum, err := l.entries.SumByCompany(ctx, companyID)
	if err != nil {
		return BalanceDrift{}, err
	}

	return BalanceDrift{CompanyID: companyID, Stored: comp.Balance(), Computed: sum}, nil
}
