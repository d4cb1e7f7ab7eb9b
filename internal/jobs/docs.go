// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(recomputeHandler, cfg.StatsReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// StatisticsReconciliationJob re-aggregates every courier's statistics from its
// order history and rewrites those that drifted. Completion already keeps the
// statistics current, so a non-zero correction count is logged as a warning and
// counted in dispatch_statistics_corrections_total.
package jobs
