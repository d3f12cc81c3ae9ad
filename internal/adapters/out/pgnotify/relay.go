// Package pgnotify fans job pushes out to every replica through PostgreSQL
// LISTEN/NOTIFY. Broadcast only sends the job id; each replica's listener
// loads the job and pushes it to its own agent connections, including the
// replica that sent the notification.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/ports"
)

const (
	DefaultChannel = "print_jobs"

	kindQueued  = "queued"
	kindRetried = "retried"

	minReconnect = 10 * time.Second
	maxReconnect = time.Minute
	pingInterval = 90 * time.Second
)

// Notifier sends a NOTIFY.
type Notifier interface {
	Notify(ctx context.Context, channel, payload string) error
}

// JobLoader reads a job by id.
type JobLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*printjob.PrintJob, error)
}

// GormNotifier issues pg_notify through a GORM connection.
type GormNotifier struct {
	db *gorm.DB
}

func NewGormNotifier(db *gorm.DB) *GormNotifier {
	return &GormNotifier{db: db}
}

func (n *GormNotifier) Notify(ctx context.Context, channel, payload string) error {
	return n.db.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", channel, payload).Error
}

// Relay implements ports.JobBroadcaster on top of a local broadcaster.
type Relay struct {
	dsn      string
	channel  string
	notifier Notifier
	jobs     JobLoader
	local    ports.JobBroadcaster
	logger   *slog.Logger
}

func NewRelay(
	dsn, channel string,
	notifier Notifier,
	jobs JobLoader,
	local ports.JobBroadcaster,
	logger *slog.Logger,
) *Relay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Relay{
		dsn:      dsn,
		channel:  channel,
		notifier: notifier,
		jobs:     jobs,
		local:    local,
		logger:   logger.With("component", "pgnotify-relay", "channel", channel),
	}
}

func (r *Relay) Broadcast(ctx context.Context, job *printjob.PrintJob) error {
	return r.notifier.Notify(ctx, r.channel, kindQueued+":"+job.ID().String())
}

func (r *Relay) RetryBroadcast(ctx context.Context, job *printjob.PrintJob) error {
	return r.notifier.Notify(ctx, r.channel, kindRetried+":"+job.ID().String())
}

// Run listens until ctx is cancelled. The listener reconnects on its own;
// notifications sent while disconnected are lost and picked up by the stuck
// job re-push.
func (r *Relay) Run(ctx context.Context) error {
	listener := pq.NewListener(r.dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
			r.logger.WarnContext(ctx, "listener connection lost", "error", err)
		case pq.ListenerEventReconnected:
			r.logger.InfoContext(ctx, "listener reconnected")
		}
	})
	defer func() { _ = listener.Close() }()

	if err := listener.Listen(r.channel); err != nil {
		return fmt.Errorf("listen %s: %w", r.channel, err)
	}
	r.logger.InfoContext(ctx, "listening for job pushes")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-listener.Notify:
			if n == nil {
				continue
			}
			if err := r.Handle(ctx, n.Extra); err != nil {
				r.logger.ErrorContext(ctx, "relay push failed", "payload", n.Extra, "error", err)
			}
		case <-ticker.C:
			if err := listener.Ping(); err != nil {
				r.logger.WarnContext(ctx, "listener ping failed", "error", err)
			}
		}
	}
}

// Handle pushes the job named by a notification payload to the local hub.
func (r *Relay) Handle(ctx context.Context, payload string) error {
	kind, rawID, ok := strings.Cut(payload, ":")
	if !ok {
		return fmt.Errorf("malformed payload %q", payload)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("malformed job id in %q: %w", payload, err)
	}

	job, err := r.jobs.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status() != printjob.Pending {
		r.logger.DebugContext(ctx, "job no longer pending, not pushed", "job_id", id, "status", job.Status().String())
		return nil
	}

	switch kind {
	case kindQueued:
		return r.local.Broadcast(ctx, job)
	case kindRetried:
		return r.local.RetryBroadcast(ctx, job)
	default:
		return errors.New("unknown push kind " + kind)
	}
}
