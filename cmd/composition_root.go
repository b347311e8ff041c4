package cmd

import (
	"fmt"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/blobstore"
	"dispatch/internal/adapters/out/clock"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/report"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	blobs      ports.BlobStore
	clock      ports.Clock
	logger     zerolog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger zerolog.Logger) (*CompositionRoot, error) {
	systemClock, err := clock.NewSystem(config.Timezone)
	if err != nil {
		return nil, err
	}
	blobs, err := blobstore.NewDiskStore(config.BlobRoot)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		blobs:      blobs,
		clock:      systemClock,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateReplacePenaltyRulesCommandHandler() commands.ReplacePenaltyRulesCommandHandler {
	var f commands.PenaltyRuleUoWFactory = FuncPenaltyRuleUoWFactory(func() commands.PenaltyRuleUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewReplacePenaltyRulesCommandHandler(f)
}

func (c *CompositionRoot) CreateRecomputeRatingCommandHandler() commands.RecomputeRatingCommandHandler {
	return commands.NewRecomputeRatingCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateCommands() httpadapter.Commands {
	f := c.commandUoWFactory()
	return httpadapter.Commands{
		CreateOrder:             commands.NewCreateOrderCommandHandler(f, c.clock),
		AssignOrder:             commands.NewAssignOrderCommandHandler(f, c.clock),
		PublishToPool:           commands.NewPublishToPoolCommandHandler(f, c.clock),
		TakeFromPool:            commands.NewTakeFromPoolCommandHandler(f, c.clock),
		RejectOrder:             commands.NewRejectOrderCommandHandler(f, c.clock),
		StartOrder:              commands.NewStartOrderCommandHandler(f, c.clock),
		FinishOrder:             commands.NewFinishOrderCommandHandler(f, c.clock),
		ReportOutcome:           commands.NewReportOutcomeCommandHandler(f, c.blobs, c.clock),
		RecordReason:            commands.NewRecordReasonCommandHandler(f, c.clock),
		UpdateDelivery:          commands.NewUpdateDeliveryCommandHandler(f, c.clock),
		CreateCompany:           commands.NewCreateCompanyCommandHandler(f, c.clock),
		RecomputeRating:         c.CreateRecomputeRatingCommandHandler(),
		AppendLedgerEntry:       commands.NewAppendLedgerEntryCommandHandler(f, c.clock),
		UploadDocument:          commands.NewUploadDocumentCommandHandler(f, c.blobs, c.clock),
		CreateOrderFromDocument: commands.NewCreateOrderFromDocumentCommandHandler(f, c.clock),
	}
}

func (c *CompositionRoot) CreateReconcileBalancesQueryHandler() queries.ReconcileBalancesQueryHandler {
	return queries.NewReconcileBalancesQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetCompanyRatingsQueryHandler() queries.GetCompanyRatingsQueryHandler {
	return queries.NewGetCompanyRatingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQueries() httpadapter.Queries {
	return httpadapter.Queries{
		Order:         queries.NewGetOrderQueryHandler(c.gormDB),
		Pool:          queries.NewGetPoolOrdersQueryHandler(c.gormDB),
		CompanyOrders: queries.NewGetCompanyOrdersQueryHandler(c.gormDB),
		Wallet:        queries.NewGetWalletQueryHandler(c.gormDB),
		Ratings:       c.CreateGetCompanyRatingsQueryHandler(),
		NewDocuments:  queries.NewGetNewDocumentsQueryHandler(c.gormDB),
		Reconcile:     c.CreateReconcileBalancesQueryHandler(),
	}
}

func (c *CompositionRoot) CreateAuthenticator() (*httpadapter.Authenticator, error) {
	return httpadapter.NewAuthenticator(c.config.JWTSecret, c.config.JWTIssuer)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	auth, err := c.CreateAuthenticator()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewServer(
		c.CreateCommands(),
		c.CreateQueries(),
		httpadapter.Reports{
			JobSheet:        report.NewJobSheetGenerator(),
			WalletStatement: report.NewWalletStatementGenerator(),
		},
		auth,
		c.clock,
		c.logger,
	), nil
}

// CreateJobManager wires the background jobs; they act as system.
func (c *CompositionRoot) CreateJobManager(system actor.Actor) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcileBalancesQueryHandler(),
		c.CreateGetCompanyRatingsQueryHandler(),
		c.CreateRecomputeRatingCommandHandler(),
		system,
		jobs.Schedules{
			Reconcile:     c.config.ReconcileSchedule,
			RatingRefresh: c.config.RatingRefreshSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPenaltyRuleUoWFactory func() commands.PenaltyRuleUoW

func (f FuncPenaltyRuleUoWFactory) Create() commands.PenaltyRuleUoW {
	return f()
}
