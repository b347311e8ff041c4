package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// TakeFromPoolCommandHandler lets exactly one of several racing companies win
// a pooled order. Losers get AlreadyTakenError, which is also a ConflictError.
type TakeFromPoolCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewTakeFromPoolCommandHandler(uowFactory UoWFactory, clock ports.Clock) TakeFromPoolCommandHandler {
	return TakeFromPoolCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h TakeFromPoolCommandHandler) Handle(ctx context.Context, cmd TakeFromPoolCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireActFor(cmd.CompanyID(), "take order from pool"); err != nil {
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
	if _, err = uow.CompanyRepository().Get(ctx, cmd.CompanyID()); err != nil {
		return err
	}

	now := h.clock.Now()
	if err = o.TakeFromPool(cmd.CompanyID(), now); err != nil {
		return err
	}

	manager := services.NewAssignmentManager(uow.AssignmentRepository())
	_, err = manager.Open(ctx, cmd.OrderID(), cmd.CompanyID(), cmd.actorID(), now)
	if errors.Is(err, errs.ErrConflict) {
		return errs.NewAlreadyTakenError(cmd.OrderID())
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = recomputeRatings(ctx, uow, cmd.CompanyID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
