// Package jobs provides scheduled background tasks for the wizard service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules take a seconds field.
//
// # Available Jobs
//
// 1. SessionSweepJob - drops sessions that reached done or stayed idle past SESSION_IDLE_TTL
// 2. BoxCatalogRefreshJob - pages through the inventory service and replaces the box catalog
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, refreshHandler, schedules, logger)
//
//	// Load the catalog once before serving
//	jobManager.BoxCatalogRefresh().Run(ctx)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures are logged and the next tick retries. A failed refresh keeps the
// previous catalog. Failed job starts stop any already running jobs.
package jobs
