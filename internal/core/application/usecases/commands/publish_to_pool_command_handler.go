package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type PublishToPoolCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewPublishToPoolCommandHandler(uowFactory UoWFactory, clock ports.Clock) PublishToPoolCommandHandler {
	return PublishToPoolCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h PublishToPoolCommandHandler) Handle(ctx context.Context, cmd PublishToPoolCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("publish order to pool"); err != nil {
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

	active, err := services.NewAssignmentManager(uow.AssignmentRepository()).GetActive(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if active != nil {
		return errs.NewConflictError("order assignment", cmd.OrderID())
	}

	if err = o.Publish(h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
