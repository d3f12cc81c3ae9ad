package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
)

// DocumentRenderer turns a document into bytes of the requested format.
// Implementations must not touch shared state; they may be called concurrently.
type DocumentRenderer interface {
	Render(ctx context.Context, format printjob.Format, doc document.Document, templateID string) ([]byte, error)
}

// Blob is a stored document.
type Blob struct {
	ContentType string
	Data        []byte
}

// BlobStore keeps generated documents for later download.
type BlobStore interface {
	Put(ctx context.Context, key string, blob Blob) error

	// Get returns ObjectNotFoundError when the key is unknown or expired.
	Get(ctx context.Context, key string) (Blob, error)
}

// NotificationTransport hands a rendered message to an SMS or email provider.
type NotificationTransport interface {
	Send(ctx context.Context, msg notification.Message) error

	// Provider names the transport in communication records.
	Provider() string
}

// JobBroadcaster pushes queued jobs to connected printer agents.
type JobBroadcaster interface {
	Broadcast(ctx context.Context, job *printjob.PrintJob) error
	RetryBroadcast(ctx context.Context, job *printjob.PrintJob) error
}

// OrderEventPublisher publishes order status changes to other services.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}
