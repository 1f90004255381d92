// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the settlement engine.
//
// # Available Jobs
//
// 1. RateRefreshJob - Periodically pulls a fresh exchange-rate table and
// swaps it into the shared holder used by settlement calculations.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(rateSource, rateHolder, "@every 1h", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the previous rate table stays in place;
// settlement keeps working against the last known-good table.
package jobs
