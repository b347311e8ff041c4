package commands

import (
	"context"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/services"
)

type RecomputeRatingCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecomputeRatingCommandHandler(uowFactory UoWFactory) RecomputeRatingCommandHandler {
	return RecomputeRatingCommandHandler{uowFactory: uowFactory}
}

// Handle returns the company with its freshly stored rating and counters.
func (h RecomputeRatingCommandHandler) Handle(ctx context.Context, cmd RecomputeRatingCommand) (*company.Company, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireDispatcher("recompute rating"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := services.NewRatingCalculator(uow.OrderRepository(), uow.CompanyRepository()).
		Recompute(ctx, cmd.CompanyID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}
