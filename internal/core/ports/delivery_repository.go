package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

type DeliveryRepository interface {
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	Update(ctx context.Context, aggregate *delivery.Delivery) error

	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
