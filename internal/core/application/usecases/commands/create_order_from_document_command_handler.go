package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// CreateOrderFromDocumentCommandHandler turns a new intake document into an
// inbox order and links the two. A document produces at most one order.
type CreateOrderFromDocumentCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewCreateOrderFromDocumentCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
) CreateOrderFromDocumentCommandHandler {
	return CreateOrderFromDocumentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateOrderFromDocumentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderFromDocumentCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().RequireDispatcher("create order from document"); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	docRepo := uow.DocumentRepository()

	doc, err := docRepo.GetForUpdate(ctx, cmd.DocumentID())
	if err != nil {
		return kernel.UUID{}, err
	}

	userID := cmd.Actor().UserID()
	o, err := createOrder(ctx, uow, cmd.Fields(), &userID, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = doc.LinkOrder(o.ID()); err != nil {
		return kernel.UUID{}, err
	}
	if err = docRepo.Update(ctx, doc); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return o.ID(), nil
}
