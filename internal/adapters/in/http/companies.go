package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"

	"github.com/labstack/echo/v4"
)

// CreateCompany handles POST /api/v1/companies.
func (s *Server) CreateCompany(c echo.Context) error {
	var req NewCompanyRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewCreateCompanyCommand(req.Name, req.Email, actorFrom(c))
	if err != nil {
		return err
	}
	id, err := s.commands.CreateCompany.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetCompanyRatings handles GET /api/v1/companies/ratings.
func (s *Server) GetCompanyRatings(c echo.Context) error {
	ratings, err := s.queries.Ratings.Handle(c.Request().Context(), queries.NewGetCompanyRatingsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCompanyRatings(ratings))
}

// GetCompanyOrders handles GET /api/v1/companies/{id}/orders.
func (s *Server) GetCompanyOrders(c echo.Context) error {
	companyID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCompanyOrdersQuery(companyID, actorFrom(c))
	if err != nil {
		return err
	}
	orders, err := s.queries.CompanyOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderSummaries(orders))
}

// GetWallet handles GET /api/v1/companies/{id}/wallet.
func (s *Server) GetWallet(c echo.Context) error {
	wallet, err := s.wallet(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWallet(wallet))
}

// GetWalletStatement handles GET /api/v1/companies/{id}/wallet.xlsx.
func (s *Server) GetWalletStatement(c echo.Context) error {
	wallet, err := s.wallet(c)
	if err != nil {
		return err
	}
	body, err := s.reports.WalletStatement.Generate(wallet)
	if err != nil {
		return err
	}
	return attachment(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"wallet-"+wallet.CompanyID.String()+".xlsx",
		body,
	)
}

func (s *Server) wallet(c echo.Context) (queries.Wallet, error) {
	companyID, err := pathUUID(c, "id")
	if err != nil {
		return queries.Wallet{}, err
	}
	query, err := queries.NewGetWalletQuery(companyID, actorFrom(c))
	if err != nil {
		return queries.Wallet{}, err
	}
	return s.queries.Wallet.Handle(c.Request().Context(), query)
}

// RecomputeRating handles POST /api/v1/companies/{id}/rating.
func (s *Server) RecomputeRating(c echo.Context) error {
	companyID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRecomputeRatingCommand(companyID, actorFrom(c))
	if err != nil {
		return err
	}
	comp, err := s.commands.RecomputeRating.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	perf := comp.Performance()
	return c.JSON(http.StatusOK, CompanyRating{
		ID:                comp.ID().String(),
		Name:              comp.Name(),
		Rating:            comp.Rating(),
		OrdersTotal:       perf.OrdersTotal,
		OrdersFinished:    perf.OrdersFinished,
		CompanyFaultCount: perf.CompanyFaultCount,
		NotPossibleCount:  perf.NotPossibleCount,
		StornoCount:       perf.StornoCount,
	})
}

// AppendLedgerEntry handles POST /api/v1/companies/{id}/ledger.
func (s *Server) AppendLedgerEntry(c echo.Context) error {
	companyID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req LedgerEntryRequest
	if err = c.Bind(&req); err != nil {
		return err
	}
	orderID, err := optionalUUID(req.OrderID)
	if err != nil {
		return err
	}
	amount, err := kernel.MoneyFromString(req.AmountEUR)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAppendLedgerEntryCommand(
		companyID,
		orderID,
		ledger.EntryType(req.Type),
		ledger.Source(req.Source),
		amount,
		req.Comment,
		actorFrom(c),
	)
	if err != nil {
		return err
	}
	id, err := s.commands.AppendLedgerEntry.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Created{ID: id.String()})
}

// GetReconciliation handles GET /api/v1/ledger/reconciliation.
func (s *Server) GetReconciliation(c echo.Context) error {
	query, err := queries.NewReconcileBalancesQuery(actorFrom(c))
	if err != nil {
		return err
	}
	report, err := s.queries.Reconcile.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReconciliation(report))
}
