package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

type OrderRepository interface {
	// Add persists a new order. A duplicate order number yields errs.ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads the order and locks its row. Every state-changing
	// engine operation starts here and re-checks status after the lock is held.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListHeldBy returns the orders whose current company is companyID.
	ListHeldBy(ctx context.Context, companyID kernel.UUID) ([]*order.Order, error)
}
