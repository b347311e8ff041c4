// Package http exposes the dispatch engine over a JSON API served by echo.
// Every /api/v1 route requires a bearer token and is validated against the
// embedded OpenAPI document before it reaches a handler.
package http

import (
	"context"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// QueryHandler is the read side as the HTTP layer sees it.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Commands groups the write-side handlers.
type Commands struct {
	CreateOrder             commands.CreateOrderCommandHandler
	AssignOrder             commands.AssignOrderCommandHandler
	PublishToPool           commands.PublishToPoolCommandHandler
	TakeFromPool            commands.TakeFromPoolCommandHandler
	RejectOrder             commands.RejectOrderCommandHandler
	StartOrder              commands.StartOrderCommandHandler
	FinishOrder             commands.FinishOrderCommandHandler
	ReportOutcome           commands.ReportOutcomeCommandHandler
	RecordReason            commands.RecordReasonCommandHandler
	UpdateDelivery          commands.UpdateDeliveryCommandHandler
	CreateCompany           commands.CreateCompanyCommandHandler
	RecomputeRating         commands.RecomputeRatingCommandHandler
	AppendLedgerEntry       commands.AppendLedgerEntryCommandHandler
	UploadDocument          commands.UploadDocumentCommandHandler
	CreateOrderFromDocument commands.CreateOrderFromDocumentCommandHandler
}

// Queries groups the read-side handlers.
type Queries struct {
	Order         QueryHandler[queries.GetOrderQuery, queries.OrderDetails]
	Pool          QueryHandler[queries.GetPoolOrdersQuery, []queries.OrderSummary]
	CompanyOrders QueryHandler[queries.GetCompanyOrdersQuery, []queries.OrderSummary]
	Wallet        QueryHandler[queries.GetWalletQuery, queries.Wallet]
	Ratings       QueryHandler[queries.GetCompanyRatingsQuery, []queries.CompanyRating]
	NewDocuments  QueryHandler[queries.GetNewDocumentsQuery, []queries.DocumentSummary]
	Reconcile     QueryHandler[queries.ReconcileBalancesQuery, queries.ReconciliationReport]
}

type (
	JobSheetRenderer interface {
		Generate(o queries.OrderDetails, loc *time.Location) ([]byte, error)
	}

	WalletStatementRenderer interface {
		Generate(w queries.Wallet) ([]byte, error)
	}
)

// Reports renders downloadable documents.
type Reports struct {
	JobSheet        JobSheetRenderer
	WalletStatement WalletStatementRenderer
}

// maxUploadBytes bounds intake documents and outcome photos.
const maxUploadBytes = 20 << 20

// Server handles HTTP requests and hands them to the application use cases.
type Server struct {
	commands Commands
	queries  Queries
	reports  Reports
	auth     *Authenticator
	clock    ports.Clock
	log      zerolog.Logger
}

func NewServer(
	cmds Commands,
	qrs Queries,
	reports Reports,
	auth *Authenticator,
	clock ports.Clock,
	logger zerolog.Logger,
) *Server {
	return &Server{
		commands: cmds,
		queries:  qrs,
		reports:  reports,
		auth:     auth,
		clock:    clock,
		log:      logger.With().Str("component", "http").Logger(),
	}
}

// Echo builds the echo instance with middleware and every route registered.
func (s *Server) Echo(ctx context.Context) (*echo.Echo, error) {
	doc, err := loadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = errorHandler(s.log)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())
	e.Use(middleware.BodyLimit("25M"))

	e.GET("/health", s.health)
	e.GET("/openapi.yaml", s.openAPI)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	s.RegisterRoutes(e.Group("/api/v1", s.auth.Middleware(), validator))

	return e, nil
}

// RegisterRoutes mounts the API on g.
func (s *Server) RegisterRoutes(g *echo.Group) {
	g.POST("/orders", s.CreateOrder)
	g.GET("/orders/:id", s.GetOrder)
	g.POST("/orders/:id/assign", s.AssignOrder)
	g.POST("/orders/:id/publish", s.PublishToPool)
	g.POST("/orders/:id/take", s.TakeFromPool)
	g.POST("/orders/:id/reject", s.RejectOrder)
	g.POST("/orders/:id/start", s.StartOrder)
	g.POST("/orders/:id/finish", s.FinishOrder)
	g.POST("/orders/:id/outcome", s.ReportOutcome)
	g.POST("/orders/:id/reason", s.RecordReason)
	g.PUT("/orders/:id/delivery", s.UpdateDelivery)
	g.GET("/orders/:id/sheet.pdf", s.GetJobSheet)
	g.GET("/pool", s.GetPool)

	g.POST("/companies", s.CreateCompany)
	g.GET("/companies/ratings", s.GetCompanyRatings)
	g.GET("/companies/:id/orders", s.GetCompanyOrders)
	g.GET("/companies/:id/wallet", s.GetWallet)
	g.GET("/companies/:id/wallet.xlsx", s.GetWalletStatement)
	g.POST("/companies/:id/rating", s.RecomputeRating)
	g.POST("/companies/:id/ledger", s.AppendLedgerEntry)
	g.GET("/ledger/reconciliation", s.GetReconciliation)

	g.POST("/documents", s.UploadDocument)
	g.GET("/documents", s.GetNewDocuments)
	g.POST("/documents/:id/order", s.CreateOrderFromDocument)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) openAPI(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := s.log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = s.log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
