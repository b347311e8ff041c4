package commands

import (
	"context"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

type CreateCompanyCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
}

func NewCreateCompanyCommandHandler(uowFactory UoWFactory, clock ports.Clock) CreateCompanyCommandHandler {
	return CreateCompanyCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateCompanyCommandHandler) Handle(ctx context.Context, cmd CreateCompanyCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().RequireDispatcher("create company"); err != nil {
		return kernel.UUID{}, err
	}

	c, err := company.NewCompany(kernel.NewUUID(), cmd.Name(), cmd.Email(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CompanyRepository().Add(ctx, c); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return c.ID(), nil
}
