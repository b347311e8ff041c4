package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

type AppendLedgerEntryCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewAppendLedgerEntryCommandHandler(uowFactory UoWFactory, clock ports.Clock) AppendLedgerEntryCommandHandler {
	return AppendLedgerEntryCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle posts the entry and moves the stored balance by the same amount.
func (h AppendLedgerEntryCommandHandler) Handle(ctx context.Context, cmd AppendLedgerEntryCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().RequireDispatcher("append ledger entry"); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CompanyRepository().Get(ctx, cmd.CompanyID()); err != nil {
		return kernel.UUID{}, err
	}
	if cmd.OrderID() != nil {
		if _, err := uow.OrderRepository().Get(ctx, *cmd.OrderID()); err != nil {
			return kernel.UUID{}, err
		}
	}

	userID := cmd.Actor().UserID()
	entry, err := services.NewLedger(uow.LedgerRepository(), uow.CompanyRepository()).Append(ctx, ledger.NewEntryParams{
		CompanyID: cmd.CompanyID(),
		OrderID:   cmd.OrderID(),
		Type:      cmd.EntryType(),
		Source:    cmd.Source(),
		Amount:    cmd.Amount(),
		Comment:   cmd.Comment(),
		CreatedBy: &userID,
		CreatedAt: h.clock.Now(),
	})
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return entry.ID(), nil
}
