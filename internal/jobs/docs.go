// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and run with a system dispatcher actor.
//
// # Available Jobs
//
// 1. ReconciliationJob - compares each company's stored balance with the sum of
// its ledger entries and logs every drift. Default schedule "0 */15 * * * *".
// 2. RatingRefreshJob - recomputes every company's rating from its current
// orders. Default schedule "0 0 3 * * *".
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcile, ratings, recompute, system, schedules, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried at the next tick. A failed job start
// stops the jobs that were already running.
package jobs
