package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetCompanyOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCompanyOrdersQueryHandler(db *gorm.DB) GetCompanyOrdersQueryHandler {
	return GetCompanyOrdersQueryHandler{db: db}
}

func (h GetCompanyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCompanyOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.actor.RequireActFor(query.companyID, "list company orders"); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+orderSummaryColumns+`
		FROM installation_orders o
		WHERE o.current_company_id = ?
		ORDER BY o.date, o.time_from, o.order_number
	`, query.companyID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
