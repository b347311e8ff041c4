package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports/portstest"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRating(t *testing.T) {
	companyID := kernel.NewUUID()

	t.Run("no orders rates 5.00", func(t *testing.T) {
		p, rating := services.EvaluateRating(nil)

		assert.Equal(t, company.Performance{}, p)
		assert.Equal(t, "5.00", rating.StringFixed(2))
	})

	t.Run("ten orders with two faults and one storno rate 4.20", func(t *testing.T) {
		orders := []*order.Order{
			heldOrder(t, companyID, order.Finished, order.ReasonCompanyFault),
			heldOrder(t, companyID, order.InProgress, order.ReasonCompanyFault),
			heldOrder(t, companyID, order.Storno, order.ReasonNeutral),
		}
		for range 7 {
			orders = append(orders, heldOrder(t, companyID, order.Finished, ""))
		}

		p, rating := services.EvaluateRating(orders)

		assert.Equal(t, company.Performance{
			OrdersTotal:       10,
			OrdersFinished:    8,
			CompanyFaultCount: 2,
			StornoCount:       1,
		}, p)
		assert.Equal(t, "4.20", rating.StringFixed(2))
	})

	t.Run("negative outcomes blamed on the company count twice", func(t *testing.T) {
		orders := []*order.Order{
			heldOrder(t, companyID, order.NotPossible, order.ReasonCompanyFault),
			heldOrder(t, companyID, order.Finished, ""),
			heldOrder(t, companyID, order.Finished, ""),
			heldOrder(t, companyID, order.Finished, ""),
		}

		p, rating := services.EvaluateRating(orders)

		assert.Equal(t, 1, p.CompanyFaultCount)
		assert.Equal(t, 1, p.NotPossibleCount)
		// 5 - 3*0.25 - 2*0.25
		assert.Equal(t, "3.75", rating.StringFixed(2))
	})

	t.Run("clamps at 1.00", func(t *testing.T) {
		orders := []*order.Order{
			heldOrder(t, companyID, order.Storno, order.ReasonCompanyFault),
			heldOrder(t, companyID, order.NotPossible, order.ReasonCompanyFault),
		}

		_, rating := services.EvaluateRating(orders)

		assert.Equal(t, "1.00", rating.StringFixed(2))
	})

	t.Run("rounds to two places", func(t *testing.T) {
		orders := []*order.Order{
			heldOrder(t, companyID, order.Finished, ""),
			heldOrder(t, companyID, order.Finished, ""),
			heldOrder(t, companyID, order.Storno, order.ReasonNeutral),
		}

		_, rating := services.EvaluateRating(orders)

		// 5 - 2/3 = 4.333...
		assert.True(t, rating.Equal(decimal.RequireFromString("4.33")))
	})
}

func TestRatingCalculator_Recompute(t *testing.T) {
	ctx := t.Context()
	store := portstest.NewStore()
	uow := store.Create()

	comp, err := company.NewCompany(kernel.NewUUID(), "Montage Süd", "", time.Now())
	require.NoError(t, err)
	store.SeedCompany(comp)
	store.SeedOrder(heldOrder(t, comp.ID(), order.Finished, ""))
	store.SeedOrder(heldOrder(t, comp.ID(), order.Storno, order.ReasonCompanyFault))
	store.SeedOrder(heldOrder(t, kernel.NewUUID(), order.Storno, order.ReasonCompanyFault))

	calc := services.NewRatingCalculator(uow.OrderRepository(), uow.CompanyRepository())

	first, err := calc.Recompute(ctx, comp.ID())
	require.NoError(t, err)
	second, err := calc.Recompute(ctx, comp.ID())
	require.NoError(t, err)

	// 5 - 3*0.5 - 2*0.5
	assert.Equal(t, "2.50", first.Rating().StringFixed(2))
	assert.Equal(t, company.Performance{OrdersTotal: 2, OrdersFinished: 1, CompanyFaultCount: 1, StornoCount: 1},
		first.Performance())
	assert.True(t, first.Rating().Equal(second.Rating()))
	assert.Equal(t, first.Performance(), second.Performance())

	stored := store.Company(comp.ID())
	assert.True(t, stored.Rating().Equal(first.Rating()))

	_, err = calc.Recompute(ctx, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
