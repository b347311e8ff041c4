package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCompanyRatingsQueryIsNotConstructed = errors.New(
	"GetCompanyRatingsQuery must be created via NewGetCompanyRatingsQuery constructor",
)

// GetCompanyRatingsQuery ranks companies, best rating first.
type GetCompanyRatingsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCompanyRatingsQuery() GetCompanyRatingsQuery {
	return GetCompanyRatingsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCompanyRatingsQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyRatingsQueryIsNotConstructed)
}

type CompanyRating struct {
	ID                kernel.UUID
	Name              string
	Rating            decimal.Decimal
	OrdersTotal       int
	OrdersFinished    int
	CompanyFaultCount int
	NotPossibleCount  int
	StornoCount       int
}
