// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and skip a tick while the previous run is still going.
//
// # Available Jobs
//
//  1. RepushStuckJobsJob - pushes PENDING jobs nobody claimed to the agents again
//  2. PurgeCompletedJobsJob - deletes COMPLETED jobs older than the retention
//  3. SettingsRefreshJob - reloads print and notification settings from storage
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.DefaultConfig(), repushHandler, purgeHandler, refreshers, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Every run has its own timeout. Failures are logged and the next tick runs
// normally. A failed start stops the jobs that were already started.
package jobs
