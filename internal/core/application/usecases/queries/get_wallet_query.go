package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery returns a company's stored balance and its ledger, oldest entry first.
type GetWalletQuery struct {
	companyID kernel.UUID
	actor     actor.Actor

	guard guard.ConstructorGuard
}

func NewGetWalletQuery(companyID kernel.UUID, a actor.Actor) (GetWalletQuery, error) {
	if err := errors.Join(companyID.Validate(), a.Validate()); err != nil {
		return GetWalletQuery{}, err
	}
	return GetWalletQuery{companyID: companyID, actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWalletQuery) CompanyID() kernel.UUID {
	return q.companyID
}

func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

type WalletEntry struct {
	ID          kernel.UUID
	OrderID     *kernel.UUID
	OrderNumber string
	Type        string
	Source      string
	Amount      kernel.Money
	Comment     string
	CreatedAt   time.Time
}

type Wallet struct {
	CompanyID   kernel.UUID
	CompanyName string
	Balance     kernel.Money
	Entries     []WalletEntry
}
