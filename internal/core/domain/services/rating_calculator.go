package services

import (
	"context"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/shopspring/decimal"
)

var (
	faultWeight   = decimal.NewFromInt(3)
	failureWeight = decimal.NewFromInt(2)
)

const ratingPlaces = 2

// RatingCalculator recomputes a company's rating from the orders it currently
// holds. Orders the company held before a reassignment no longer count.
type RatingCalculator struct {
	orders    ports.OrderRepository
	companies ports.CompanyRepository
}

func NewRatingCalculator(orders ports.OrderRepository, companies ports.CompanyRepository) RatingCalculator {
	return RatingCalculator{orders: orders, companies: companies}
}

// Recompute locks the company, evaluates its current orders and stores the
// counters and rating. Running it twice without an order change is a no-op.
func (c RatingCalculator) Recompute(ctx context.Context, companyID kernel.UUID) (*company.Company, error) {
	comp, err := c.companies.GetForUpdate(ctx, companyID)
	if err != nil {
		return nil, err
	}

	held, err := c.orders.ListHeldBy(ctx, companyID)
	if err != nil {
		return nil, err
	}

	performance, rating := EvaluateRating(held)
	if err = comp.ApplyPerformance(performance, rating); err != nil {
		return nil, err
	}

	if err = c.companies.SavePerformance(ctx, comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// EvaluateRating derives the counters and the rating
//
//	5 - 3*fault/total - 2*(not_possible+storno)/total
//
// clamped to [1, 5] and rounded half-even to two places. No orders means 5.00.
func EvaluateRating(orders []*order.Order) (company.Performance, decimal.Decimal) {
	var p company.Performance

	for _, o := range orders {
		p.OrdersTotal++
		switch o.Status() {
		case order.Finished:
			p.OrdersFinished++
		case order.NotPossible:
			p.NotPossibleCount++
		case order.Storno:
			p.StornoCount++
		}
		if r := o.Reason(); r != nil && r.IsCompanyFault() {
			p.CompanyFaultCount++
		}
	}

	if p.OrdersTotal == 0 {
		return p, company.MaxRating.Round(ratingPlaces)
	}

	total := decimal.NewFromInt(int64(p.OrdersTotal))
	faultShare := decimal.NewFromInt(int64(p.CompanyFaultCount)).Div(total)
	failureShare := decimal.NewFromInt(int64(p.NotPossibleCount + p.StornoCount)).Div(total)

	rating := company.MaxRating.
		Sub(faultWeight.Mul(faultShare)).
		Sub(failureWeight.Mul(failureShare))

	switch {
	case rating.LessThan(company.MinRating):
		rating = company.MinRating
	case rating.GreaterThan(company.MaxRating):
		rating = company.MaxRating
	}

	return p, rating.RoundBank(ratingPlaces)
}
