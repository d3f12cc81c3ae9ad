package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher reloads a settings snapshot from storage.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// SettingsRefreshJob picks up settings written by other replicas.
type SettingsRefreshJob struct {
	refreshers map[string]Refresher
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewSettingsRefreshJob(refreshers map[string]Refresher, schedule string, logger *slog.Logger) *SettingsRefreshJob {
	return &SettingsRefreshJob{
		refreshers: refreshers,
		schedule:   schedule,
		cron:       newCron(),
		logger:     logger.With("component", "settings_refresh_job"),
	}
}

func (j *SettingsRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settings refresh started", "schedule", j.schedule)
	return nil
}

func (j *SettingsRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Settings refresh stopped")
}

// run keeps the previous snapshot of any settings that fail to reload.
func (j *SettingsRefreshJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	for name, r := range j.refreshers {
		if err := r.Refresh(ctx); err != nil {
			j.logger.WarnContext(ctx, "Settings refresh failed", "settings", name, "error", err)
		}
	}
}
