package jobs

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/company"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type (
	CompanyRatingsHandler interface {
		Handle(ctx context.Context, query queries.GetCompanyRatingsQuery) ([]queries.CompanyRating, error)
	}

	RecomputeRatingHandler interface {
		Handle(ctx context.Context, cmd commands.RecomputeRatingCommand) (*company.Company, error)
	}
)

// RatingRefreshJob recomputes every company's rating from its current orders.
// Status writes already keep ratings current; the refresh repairs companies
// whose counters were touched outside the engine.
type RatingRefreshJob struct {
	ratings   CompanyRatingsHandler
	recompute RecomputeRatingHandler
	system    actor.Actor
	schedule  string
	cron      *cron.Cron
	logger    zerolog.Logger
}

func NewRatingRefreshJob(
	ratings CompanyRatingsHandler,
	recompute RecomputeRatingHandler,
	system actor.Actor,
	schedule string,
	logger zerolog.Logger,
) *RatingRefreshJob {
	return &RatingRefreshJob{
		ratings:   ratings,
		recompute: recompute,
		system:    system,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With().Str("component", "rating_refresh_job").Logger(),
	}
}

func (j *RatingRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _ = j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("rating refresh job started")
	return nil
}

func (j *RatingRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("rating refresh job stopped")
}

// Run recomputes all ratings and returns how many companies changed.
// A failing company is logged and skipped.
func (j *RatingRefreshJob) Run(ctx context.Context) int {
	current, err := j.ratings.Handle(ctx, queries.NewGetCompanyRatingsQuery())
	if err != nil {
		j.logger.Error().Err(err).Msg("list companies")
		return 0
	}

	changed := 0
	for _, c := range current {
		cmd, err := commands.NewRecomputeRatingCommand(c.ID, j.system)
		if err != nil {
			j.logger.Error().Err(err).Str("company_id", c.ID.String()).Msg("build recompute command")
			continue
		}

		updated, err := j.recompute.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error().Err(err).Str("company_id", c.ID.String()).Msg("recompute rating")
			continue
		}

		if !updated.Rating().Equal(c.Rating) {
			changed++
			j.logger.Info().
				Str("company_id", c.ID.String()).
				Str("from", c.Rating.StringFixed(2)).
				Str("to", updated.Rating().StringFixed(2)).
				Msg("rating corrected")
		}
	}
	return changed
}
