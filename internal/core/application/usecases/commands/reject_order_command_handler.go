package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RejectOrderCommandHandler closes the company's assignment, charges the
// penalty for the hours left before installation, moves that amount into the
// order's bonus pot and returns the order to the open pool.
type RejectOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewRejectOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle fails with NotOwnerError when the company holds no active assignment
// on the order and with AlreadyFinishedError when the order is finished.
func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireActFor(cmd.CompanyID(), "reject order"); err != nil {
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

	manager := services.NewAssignmentManager(uow.AssignmentRepository())
	active, err := manager.GetActive(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if active == nil || !active.BelongsTo(cmd.CompanyID()) {
		return errs.NewNotOwnerError(cmd.OrderID(), cmd.CompanyID())
	}
	if o.Status() == order.Finished {
		return errs.NewAlreadyFinishedError(cmd.OrderID())
	}

	now := h.clock.Now()
	quote, err := services.NewPenaltyResolver(uow.PenaltyRuleRepository()).
		Quote(ctx, o.InstallAt(h.clock.Location()), now)
	if err != nil {
		return err
	}

	source := ledger.SourceFor(o.TakenFromPool())

	if err = o.Reject(cmd.CompanyID(), quote.Amount, now); err != nil {
		return err
	}
	if err = manager.Close(ctx, active, cmd.Reason(), cmd.actorID(), now); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if quote.Amount.IsPositive() {
		orderID := o.ID()
		_, err = services.NewLedger(uow.LedgerRepository(), uow.CompanyRepository()).Append(ctx, ledger.NewEntryParams{
			CompanyID: cmd.CompanyID(),
			OrderID:   &orderID,
			Type:      ledger.Penalty,
			Source:    source,
			Amount:    quote.Amount.Neg(),
			Comment:   fmt.Sprintf("Rejected order %s (%dh before installation): %s", o.Number(), quote.HoursToInstall, cmd.Reason()),
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
