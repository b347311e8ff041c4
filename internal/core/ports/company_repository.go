package ports

import (
	"context"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
)

type CompanyRepository interface {
	Add(ctx context.Context, aggregate *company.Company) error

	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)

	// GetForUpdate locks the company row. Lock order is always order first, then company.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*company.Company, error)

	// SavePerformance writes counters and rating. The balance column is left alone.
	SavePerformance(ctx context.Context, aggregate *company.Company) error

	// AdjustBalance adds delta to the stored balance in place.
	AdjustBalance(ctx context.Context, id kernel.UUID, delta kernel.Money) error

	List(ctx context.Context) ([]*company.Company, error)
}
