// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is built by a constructor that validates its input; handlers
// re-check the constructor guard, then run inside a unit of work.
package commands

import (
	"context"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/pkg/background"
)

// Collaborators of the command handlers. The application services and the
// background pool satisfy them in production.
type (
	// TaskSubmitter runs work after the request has been answered.
	// SubmitOrdered runs tasks sharing a key in submission order.
	TaskSubmitter interface {
		Submit(ctx context.Context, name string, task background.Task)
		SubmitOrdered(ctx context.Context, key, name string, task background.Task)
	}

	// PrintQueuer routes a document to its printer.
	PrintQueuer interface {
		Queue(ctx context.Context, req services.QueueRequest) (services.RoutingResult, error)
	}

	// Notifier sends the messages configured for a status change.
	Notifier interface {
		Dispatch(ctx context.Context, o *order.Order, newStatus, previous order.Status) (services.DispatchSummary, error)
	}

	// PrintSettingsUpdater writes print settings through to storage and the live snapshot.
	PrintSettingsUpdater interface {
		Update(ctx context.Context, changes map[printjob.DocumentType]printsettings.TypeConfig) (printsettings.Settings, error)
	}

	// NotificationSettingsUpdater writes notification settings through to
	// storage and the live snapshot.
	NotificationSettingsUpdater interface {
		Update(ctx context.Context, settings notification.Settings) error
	}
)
