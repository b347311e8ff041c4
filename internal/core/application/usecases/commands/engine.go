package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// recomputeRatings runs the rating calculator for each distinct company inside
// the caller's transaction. Every order status write ends with this call.
func recomputeRatings(ctx context.Context, uow UoW, companyIDs ...kernel.UUID) error {
	calc := services.NewRatingCalculator(uow.OrderRepository(), uow.CompanyRepository())
	seen := make(map[kernel.UUID]struct{}, len(companyIDs))

	for _, id := range companyIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := calc.Recompute(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
