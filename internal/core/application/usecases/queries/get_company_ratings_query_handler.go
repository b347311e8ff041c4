package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCompanyRatingsQueryHandler struct {
	db *gorm.DB
}

func NewGetCompanyRatingsQueryHandler(db *gorm.DB) GetCompanyRatingsQueryHandler {
	return GetCompanyRatingsQueryHandler{db: db}
}

func (h GetCompanyRatingsQueryHandler) Handle(
	ctx context.Context,
	query GetCompanyRatingsQuery,
) ([]CompanyRating, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			rating,
			orders_total,
			orders_finished,
			company_fault_count,
			not_possible_count,
			storno_count
		FROM companies
		ORDER BY rating DESC, name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]CompanyRating, 0)
	for rows.Next() {
		var (
			r  CompanyRating
			id uuid.UUID
		)
		if err = rows.Scan(
			&id, &r.Name, &r.Rating, &r.OrdersTotal, &r.OrdersFinished,
			&r.CompanyFaultCount, &r.NotPossibleCount, &r.StornoCount,
		); err != nil {
			return nil, err
		}
		if r.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}
