package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AssignOrderCommandHandler assigns an order under its row lock: the status
// check and the active-assignment check both run after the lock is taken.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle fails with InvalidStateError unless the order is in inbox or
// open_pool, so assigning an already held order is an InvalidStateError.
// An active assignment row on an inbox or open_pool order means the history
// disagrees with the status; AssignmentManager.Open reports that as ConflictError.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireDispatcher("assign order"); err != nil {
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
	if err = o.Assign(cmd.CompanyID(), now); err != nil {
		return err
	}

	manager := services.NewAssignmentManager(uow.AssignmentRepository())
	if _, err = manager.Open(ctx, cmd.OrderID(), cmd.CompanyID(), cmd.actorID(), now); err != nil {
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
