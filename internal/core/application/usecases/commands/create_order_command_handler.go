package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the id of the new inbox order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().RequireDispatcher("create order"); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userID := cmd.Actor().UserID()
	o, err := createOrder(ctx, uow, cmd.Fields(), &userID, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return o.ID(), nil
}
