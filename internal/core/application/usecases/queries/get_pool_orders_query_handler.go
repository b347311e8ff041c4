package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetPoolOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPoolOrdersQueryHandler(db *gorm.DB) GetPoolOrdersQueryHandler {
	return GetPoolOrdersQueryHandler{db: db}
}

// Handle returns pooled orders with their accumulated bonus pot.
func (h GetPoolOrdersQueryHandler) Handle(ctx context.Context, query GetPoolOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT` + orderSummaryColumns + `
		FROM installation_orders o
		WHERE o.status = 'open_pool'
		ORDER BY o.date, o.time_from, o.order_number
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
