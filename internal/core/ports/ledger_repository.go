package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
)

// LedgerRepository is append-only: there is no Update or Delete.
type LedgerRepository interface {
	Add(ctx context.Context, entry *ledger.Entry) error

	// SumByCompany is the balance recomputed from scratch.
	SumByCompany(ctx context.Context, companyID kernel.UUID) (kernel.Money, error)

	ListByCompany(ctx context.Context, companyID kernel.UUID) ([]*ledger.Entry, error)
}
