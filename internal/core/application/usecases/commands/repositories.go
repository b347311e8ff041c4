// Package commands contains the operations that change dispatch state: the
// order lifecycle engine (assign, take, reject, start, finish, report outcome),
// document intake, ledger postings and administration. Every handler runs in
// one unit of work: it locks the order row first, re-checks state under the
// lock, and commits everything or nothing.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UoW gives transaction-bound access to every repository the engine touches.
	UoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
		CompanyRepository() ports.CompanyRepository
		AssignmentRepository() ports.AssignmentRepository
		PenaltyRuleRepository() ports.PenaltyRuleRepository
		LedgerRepository() ports.LedgerRepository
		DocumentRepository() ports.DocumentRepository
		DeliveryRepository() ports.DeliveryRepository
	}

	// UoWFactory creates a fresh unit of work per command.
	UoWFactory interface {
		Create() UoW
	}

	// PenaltyRuleUoW is enough for rule table administration.
	PenaltyRuleUoW interface {
		TxManager
		PenaltyRuleRepository() ports.PenaltyRuleRepository
	}

	PenaltyRuleUoWFactory interface {
		Create() PenaltyRuleUoW
	}
)
