package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

const photoNamespace = "order_photos"

// ReportOutcomeCommandHandler stores the photo and closes the order negatively.
type ReportOutcomeCommandHandler struct {
	uowFactory UoWFactory
	blobs      ports.BlobStore
	clock      ports.Clock
}

func NewReportOutcomeCommandHandler(
	uowFactory UoWFactory,
	blobs ports.BlobStore,
	clock ports.Clock,
) ReportOutcomeCommandHandler {
	return ReportOutcomeCommandHandler{uowFactory: uowFactory, blobs: blobs, clock: clock}
}

// Handle checks custody under the row lock before the photo is written, so a
// rejected report leaves no blob behind.
func (h ReportOutcomeCommandHandler) Handle(ctx context.Context, cmd ReportOutcomeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().RequireActFor(cmd.CompanyID(), "report order outcome"); err != nil {
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
	if !o.IsHeldBy(cmd.CompanyID()) {
		return errs.NewNotOwnerError(cmd.OrderID(), cmd.CompanyID())
	}
	if o.Status() == order.Finished {
		return errs.NewAlreadyFinishedError(cmd.OrderID())
	}
	if _, err = o.Status().Fail(cmd.Outcome()); err != nil {
		return err
	}

	ref, err := h.blobs.Put(ctx, photoNamespace, cmd.Photo().Filename, cmd.Photo().Content)
	if err != nil {
		return fmt.Errorf("store outcome photo: %w", err)
	}

	reason, err := order.NewReason(cmd.Category(), cmd.Text(), ref)
	if err != nil {
		return err
	}
	if err = o.ReportOutcome(cmd.CompanyID(), cmd.Outcome(), reason, h.clock.Now()); err != nil {
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
