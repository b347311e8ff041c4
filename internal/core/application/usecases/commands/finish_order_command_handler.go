package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// FinishOrderCommandHandler completes an order and pays the holder: the base
// price as base_payment and, when the pot is not empty, the bonus pot as
// bonus_credit. The pot is zeroed in the same transaction.
type FinishOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewFinishOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) FinishOrderCommandHandler {
	return FinishOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle requires the company to be the order's current holder.
func (h FinishOrderCommandHandler) Handle(ctx context.Context, cmd FinishOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireActFor(cmd.CompanyID(), "finish order"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	payout, err := o.Finish(cmd.CompanyID(), now)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	l := services.NewLedger(uow.LedgerRepository(), uow.CompanyRepository())
	orderID := o.ID()
	credits := []struct {
		entryType ledger.EntryType
		amount    kernel.Money
		comment   string
	}{
		{ledger.BasePayment, payout.Base, fmt.Sprintf("Payment for order %s", o.Number())},
		{ledger.BonusCredit, payout.Bonus, fmt.Sprintf("Bonus for order %s", o.Number())},
	}
	for _, credit := range credits {
		if !credit.amount.IsPositive() {
			continue
		}
		_, err = l.Append(ctx, ledger.NewEntryParams{
			CompanyID: cmd.CompanyID(),
			OrderID:   &orderID,
			Type:      credit.entryType,
			Source:    ledger.SourceFor(o.TakenFromPool()),
			Amount:    credit.amount,
			Comment:   credit.comment,
			CreatedBy: cmd.actorID(),
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
	}

	if err = recomputeRatings(ctx, uow, cmd.CompanyID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
