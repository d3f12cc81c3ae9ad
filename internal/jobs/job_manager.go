package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = time.Minute

// Config holds the schedules (cron with seconds) and windows of the jobs.
type Config struct {
	RepushSchedule  string
	StuckThreshold  time.Duration
	PurgeSchedule   string
	Retention       time.Duration
	RefreshSchedule string
}

// DefaultConfig re-pushes every 30s, purges hourly with a 7 day retention
// and refreshes settings every minute.
func DefaultConfig() Config {
	return Config{
		RepushSchedule:  "*/30 * * * * *",
		StuckThreshold:  30 * time.Second,
		PurgeSchedule:   "0 0 * * * *",
		Retention:       7 * 24 * time.Hour,
		RefreshSchedule: "0 * * * * *",
	}
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []job
	names   []string
	started int
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cfg Config,
	repusher StuckJobRepusher,
	purger CompletedJobPurger,
	refreshers map[string]Refresher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []job{
			NewRepushStuckJobsJob(repusher, cfg.RepushSchedule, cfg.StuckThreshold, logger),
			NewPurgeCompletedJobsJob(purger, cfg.PurgeSchedule, cfg.Retention, logger),
			NewSettingsRefreshJob(refreshers, cfg.RefreshSchedule, logger),
		},
		names: []string{"stuck job re-push", "completed job purge", "settings refresh"},
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
		jm.started = i + 1
	}

	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := jm.started - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.started = 0
}

func newCron() *cron.Cron {
	return cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
}
