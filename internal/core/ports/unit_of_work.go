package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CompanyRepository() CompanyRepository
	AssignmentRepository() AssignmentRepository
	PenaltyRuleRepository() PenaltyRuleRepository
	LedgerRepository() LedgerRepository
	DocumentRepository() DocumentRepository
	DeliveryRepository() DeliveryRepository
}
