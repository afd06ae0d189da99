// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the offer lifecycle.
//
// # Available Jobs
//
// 1. OfferExpiryJob - Runs every minute to expire overdue job offers and
// reopen dispatched requests whose offer rounds ran dry
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(expireOffersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses the cron expression "0 * * * * *", firing at the top
// of every minute. Offer deadlines carry minute-level urgency, so a tighter
// schedule would only add churn.
//
// # Error Handling
//
// The expiry sweep is idempotent; a failed run is logged and the next tick
// retries the same work.
package jobs
