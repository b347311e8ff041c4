package commands

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateDeliveryCommandHandler edits the shipment record of an order. Besides
// the dispatcher, the company currently holding the order may update it.
type UpdateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewUpdateDeliveryCommandHandler(uowFactory UoWFactory, clock ports.Clock) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.Actor().IsDispatcher() {
		holder := o.CurrentCompany()
		if holder == nil {
			return errs.NewForbiddenError("update delivery")
		}
		if err = cmd.Actor().RequireActFor(*holder, "update delivery"); err != nil {
			return err
		}
	}

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = d.Apply(cmd.Update(), h.clock.Now()); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
