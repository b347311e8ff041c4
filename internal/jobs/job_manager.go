package jobs

import (
	"fmt"

	"dispatch/internal/core/domain/model/actor"

	"github.com/rs/zerolog"
)

// Schedules are six-field cron expressions (seconds first).
type Schedules struct {
	Reconcile     string
	RatingRefresh string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *ReconciliationJob
	ratingRefreshJob  *RatingRefreshJob
}

// NewJobManager wires every job to the handlers it runs. The jobs act as
// system, which must be a dispatcher.
func NewJobManager(
	reconcile ReconcileBalancesHandler,
	ratings CompanyRatingsHandler,
	recompute RecomputeRatingHandler,
	system actor.Actor,
	schedules Schedules,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewReconciliationJob(reconcile, system, schedules.Reconcile, logger),
		ratingRefreshJob:  NewRatingRefreshJob(ratings, recompute, system, schedules.RatingRefresh, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start balance reconciliation job: %w", err)
	}

	if err := jm.ratingRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start rating refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.ratingRefreshJob.Stop()
	jm.reconciliationJob.Stop()
}
