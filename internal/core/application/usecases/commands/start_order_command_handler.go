package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// StartOrderCommandHandler moves a held order from assigned to in_progress.
type StartOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewStartOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) StartOrderCommandHandler {
	return StartOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireActFor(cmd.CompanyID(), "start order"); err != nil {
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

	if err = o.Start(cmd.CompanyID(), h.clock.Now()); err != nil {
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
