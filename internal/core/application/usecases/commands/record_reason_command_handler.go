package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// RecordReasonCommandHandler lets the dispatcher or the holder attach a reason.
// An existing photo is kept.
type RecordReasonCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewRecordReasonCommandHandler(uowFactory UoWFactory, clock ports.Clock) RecordReasonCommandHandler {
	return RecordReasonCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RecordReasonCommandHandler) Handle(ctx context.Context, cmd RecordReasonCommand) error {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	holder := o.CurrentCompany()
	if holder == nil {
		return errs.NewInvalidStateError("record reason", o.Status().String())
	}
	if err = cmd.Actor().RequireActFor(*holder, "record order reason"); err != nil {
		return err
	}

	text, photoRef := cmd.Text(), ""
	if existing := o.Reason(); existing != nil {
		photoRef = existing.PhotoRef()
		if text == "" {
			text = existing.Text()
		}
	}
	reason, err := order.NewReason(cmd.Category(), text, photoRef)
	if err != nil {
		return err
	}
	if err = o.RecordReason(reason, h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = recomputeRatings(ctx, uow, *holder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
