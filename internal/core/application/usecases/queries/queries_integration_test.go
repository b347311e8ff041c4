package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/migrations"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/document"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/ledger"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var seedTime = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	factory    *postgres_adapter.GormUnitOfWorkFactory
	dispatcher actor.Actor
}

func TestQueriesIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.Require().NoError(migrations.Up(dsn))

	db, err := postgres_adapter.Open(dsn, postgres_adapter.PoolOptions{})
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)

	suite.dispatcher, err = actor.NewDispatcher(kernel.NewUUID())
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE deliveries, order_documents, ledger_entries,
		order_assignments, installation_orders, penalty_rules, companies`).Error
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) TestGetPoolOrders_EmptyDatabase() {
	result, err := queries.NewGetPoolOrdersQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetPoolOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestGetPoolOrders_OnlyPooledOrders() {
	pooled := suite.seedOrder("P-1", func(o *order.Order) {
		suite.Require().NoError(o.Publish(seedTime))
	})
	suite.seedOrder("I-1", nil)

	result, err := queries.NewGetPoolOrdersQueryHandler(suite.db).
		Handle(suite.T().Context(), queries.NewGetPoolOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(pooled.ID(), result[0].ID)
	suite.Equal("P-1", result[0].Number)
	suite.Equal("10:00", result[0].TimeFrom)
	suite.Equal("12:00", result[0].TimeTo)
	suite.Equal("open_pool", result[0].Status)
	suite.Nil(result[0].CurrentCompanyID)
	suite.True(result[0].BasePrice.Equal(kernel.MustMoney("100")))
}

func (suite *QueriesIntegrationTestSuite) TestGetCompanyOrders_ScopedToActor() {
	companyID, user := suite.seedCompany("Montage")
	otherID, _ := suite.seedCompany("Other")
	suite.seedOrder("C-1", func(o *order.Order) {
		suite.Require().NoError(o.Assign(companyID, seedTime))
	})
	suite.seedOrder("C-2", func(o *order.Order) {
		suite.Require().NoError(o.Assign(otherID, seedTime))
	})

	query, err := queries.NewGetCompanyOrdersQuery(companyID, user)
	suite.Require().NoError(err)
	result, err := queries.NewGetCompanyOrdersQueryHandler(suite.db).Handle(suite.T().Context(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("C-1", result[0].Number)

	query, err = queries.NewGetCompanyOrdersQuery(otherID, user)
	suite.Require().NoError(err)
	_, err = queries.NewGetCompanyOrdersQueryHandler(suite.db).Handle(suite.T().Context(), query)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetWallet_BalanceAndEntries() {
	ctx := suite.T().Context()
	companyID, user := suite.seedCompany("Montage")
	o := suite.seedOrder("W-1", nil)
	orderID := o.ID()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	l := services.NewLedger(uow.LedgerRepository(), uow.CompanyRepository())
	_, err := l.Append(ctx, ledger.NewEntryParams{
		CompanyID: companyID, OrderID: &orderID, Type: ledger.BasePayment,
		Source: ledger.Direct, Amount: kernel.MustMoney("100"), CreatedAt: seedTime,
	})
	suite.Require().NoError(err)
	_, err = l.Append(ctx, ledger.NewEntryParams{
		CompanyID: companyID, Type: ledger.Manual, Source: ledger.Direct,
		Amount: kernel.MustMoney("-7.50"), Comment: "fuel", CreatedAt: seedTime.Add(time.Hour),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewGetWalletQuery(companyID, user)
	suite.Require().NoError(err)
	wallet, err := queries.NewGetWalletQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("Montage", wallet.CompanyName)
	suite.True(wallet.Balance.Equal(kernel.MustMoney("92.50")), "balance %s", wallet.Balance)
	suite.Require().Len(wallet.Entries, 2)
	suite.Equal("W-1", wallet.Entries[0].OrderNumber)
	suite.Equal("base_payment", wallet.Entries[0].Type)
	suite.Nil(wallet.Entries[1].OrderID)
	suite.Equal("fuel", wallet.Entries[1].Comment)
}

func (suite *QueriesIntegrationTestSuite) TestGetWallet_UnknownCompany() {
	query, err := queries.NewGetWalletQuery(kernel.NewUUID(), suite.dispatcher)
	suite.Require().NoError(err)

	_, err = queries.NewGetWalletQueryHandler(suite.db).Handle(suite.T().Context(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetCompanyRatings_BestFirst() {
	ctx := suite.T().Context()
	weakID, _ := suite.seedCompany("Weak")
	suite.seedCompany("Strong")

	uow := suite.factory.Create()
	weak, err := uow.CompanyRepository().Get(ctx, weakID)
	suite.Require().NoError(err)
	suite.Require().NoError(weak.ApplyPerformance(company.Performance{OrdersTotal: 2, CompanyFaultCount: 1}, decimalFrom("3.00")))
	suite.Require().NoError(uow.CompanyRepository().SavePerformance(ctx, weak))

	ratings, err := queries.NewGetCompanyRatingsQueryHandler(suite.db).
		Handle(ctx, queries.NewGetCompanyRatingsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(ratings, 2)
	suite.Equal("Strong", ratings[0].Name)
	suite.Equal("Weak", ratings[1].Name)
	suite.Equal(1, ratings[1].CompanyFaultCount)
}

func (suite *QueriesIntegrationTestSuite) TestGetNewDocuments_SkipsLinked() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().DocumentRepository()

	fresh, err := document.NewDocument(kernel.NewUUID(), document.SourceIkea, "new.pdf",
		[]byte("new"), "documents/new.pdf", nil, seedTime)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, fresh))

	linked, err := document.NewDocument(kernel.NewUUID(), document.SourceEmail, "linked.pdf",
		[]byte("linked"), "documents/linked.pdf", nil, seedTime)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, linked))
	o := suite.seedOrder("D-1", nil)
	suite.Require().NoError(linked.LinkOrder(o.ID()))
	suite.Require().NoError(repo.Update(ctx, linked))

	query, err := queries.NewGetNewDocumentsQuery(suite.dispatcher)
	suite.Require().NoError(err)
	docs, err := queries.NewGetNewDocumentsQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(docs, 1)
	suite.Equal("new.pdf", docs[0].Filename)
	suite.Equal("ikea", docs[0].Source)
	suite.Equal(document.ContentHash([]byte("new")), docs[0].SHA256)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_HistoryAndDelivery() {
	ctx := suite.T().Context()
	companyA, userA := suite.seedCompany("Montage A")
	companyB, userB := suite.seedCompany("Montage B")
	o := suite.seedOrder("H-1", func(o *order.Order) {
		suite.Require().NoError(o.Assign(companyB, seedTime))
	})

	uow := suite.factory.Create()
	first, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), companyA, nil, seedTime)
	suite.Require().NoError(err)
	suite.Require().NoError(first.Close("rejected", nil, seedTime.Add(time.Hour)))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, first))
	second, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), companyB, nil, seedTime.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, second))

	query, err := queries.NewGetOrderQuery(o.ID(), userB)
	suite.Require().NoError(err)
	details, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("H-1", details.Number)
	suite.Equal("Montage B", details.CurrentCompanyName)
	suite.Require().Len(details.Assignments, 2)
	suite.Equal("Montage A", details.Assignments[0].CompanyName)
	suite.NotNil(details.Assignments[0].UnassignedAt)
	suite.Nil(details.Assignments[1].UnassignedAt)
	suite.Require().NotNil(details.Delivery)
	suite.Equal("planned", details.Delivery.Status)

	query, err = queries.NewGetOrderQuery(o.ID(), userA)
	suite.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.dispatcher)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(suite.T().Context(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestReconcileBalances_DetectsDrift() {
	ctx := suite.T().Context()
	companyID, _ := suite.seedCompany("Montage")
	suite.Require().NoError(suite.factory.Create().CompanyRepository().
		AdjustBalance(ctx, companyID, kernel.MustMoney("3")))

	query, err := queries.NewReconcileBalancesQuery(suite.dispatcher)
	suite.Require().NoError(err)
	report, err := queries.NewReconcileBalancesQueryHandler(suite.factory).Handle(ctx, query)

	suite.Require().NoError(err)
	drift := report.Drifting()
	suite.Require().Len(drift, 1)
	suite.True(drift[0].Stored.Equal(kernel.MustMoney("3")))
	suite.True(drift[0].Computed.IsZero())
}

func (suite *QueriesIntegrationTestSuite) seedCompany(name string) (kernel.UUID, actor.Actor) {
	c, err := company.NewCompany(kernel.NewUUID(), name, "", seedTime)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CompanyRepository().Add(suite.T().Context(), c))

	user, err := actor.NewCompanyUser(kernel.NewUUID(), c.ID())
	suite.Require().NoError(err)
	return c.ID(), user
}

// seedOrder stores a new order together with its planned delivery; mutate
// runs before the insert.
func (suite *QueriesIntegrationTestSuite) seedOrder(number string, mutate func(*order.Order)) *order.Order {
	ctx := suite.T().Context()

	customer, err := order.NewCustomer("Erika Mustermann", "Hauptstr. 1, Berlin", "+49 30 1234")
	suite.Require().NoError(err)
	from, _ := order.NewTimeOfDay(10, 0)
	to, _ := order.NewTimeOfDay(12, 0)
	schedule, err := order.NewSchedule(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), from, to)
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), number, customer, schedule, kernel.MustMoney("100"), nil, seedTime)
	suite.Require().NoError(err)
	if mutate != nil {
		mutate(o)
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	d, err := delivery.NewPlanned(o.ID(), schedule.Date(), seedTime)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, d))
	return o
}

func decimalFrom(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
