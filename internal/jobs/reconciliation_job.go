package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type ReconcileBalancesHandler interface {
	Handle(ctx context.Context, query queries.ReconcileBalancesQuery) (queries.ReconciliationReport, error)
}

// ReconciliationJob compares every company's stored balance with its ledger
// sum and logs the ones that drifted. It never corrects balances.
type ReconciliationJob struct {
	handler  ReconcileBalancesHandler
	system   actor.Actor
	schedule string
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewReconciliationJob(
	handler ReconcileBalancesHandler,
	system actor.Actor,
	schedule string,
	logger zerolog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		system:   system,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "balance_reconciliation_job").Logger(),
	}
}

func (j *ReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("balance reconciliation job started")
	return nil
}

func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("balance reconciliation job stopped")
}

// Run performs one reconciliation pass and returns the number of drifting companies.
func (j *ReconciliationJob) Run(ctx context.Context) int {
	query, err := queries.NewReconcileBalancesQuery(j.system)
	if err != nil {
		j.logger.Error().Err(err).Msg("build reconciliation query")
		return 0
	}

	report, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error().Err(err).Msg("balance reconciliation failed")
		return 0
	}

	drifting := report.Drifting()
	for _, c := range drifting {
		j.logger.Warn().
			Str("company_id", c.CompanyID.String()).
			Str("company_name", c.CompanyName).
			Str("stored_eur", c.Stored.String()).
			Str("ledger_eur", c.Computed.String()).
			Str("difference_eur", c.Difference().String()).
			Msg("company balance drifts from ledger")
	}

	j.logger.Debug().
		Int("companies", len(report.Companies)).
		Int("drifting", len(drifting)).
		Msg("balance reconciliation finished")
	return len(drifting)
}
