package commands_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/background"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() ports.OrderUoW {
	args := m.Called()
	return args.Get(0).(ports.OrderUoW)
}

type MockPrintJobRepository struct{ mock.Mock }

func (m *MockPrintJobRepository) Add(ctx context.Context, job *printjob.PrintJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockPrintJobRepository) Get(ctx context.Context, id uuid.UUID) (*printjob.PrintJob, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*printjob.PrintJob)
	return job, args.Error(1)
}

func (m *MockPrintJobRepository) UpdateStatus(ctx context.Context, job *printjob.PrintJob, expected printjob.Status) error {
	args := m.Called(ctx, job, expected)
	return args.Error(0)
}

func (m *MockPrintJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPrintJobRepository) ListStuckPending(ctx context.Context, createdBefore time.Time, limit int) ([]*printjob.PrintJob, error) {
	args := m.Called(ctx, createdBefore, limit)
	jobs, _ := args.Get(0).([]*printjob.PrintJob)
	return jobs, args.Error(1)
}

func (m *MockPrintJobRepository) PurgeCompleted(ctx context.Context, updatedBefore time.Time) (int64, error) {
	args := m.Called(ctx, updatedBefore)
	return args.Get(0).(int64), args.Error(1)
}

type MockPrintJobUoW struct{ mock.Mock }

func (m *MockPrintJobUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPrintJobUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPrintJobUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPrintJobUoW) PrintJobRepository() ports.PrintJobRepository {
	args := m.Called()
	return args.Get(0).(ports.PrintJobRepository)
}

type MockPrintJobUoWFactory struct{ mock.Mock }

func (m *MockPrintJobUoWFactory) Create() ports.PrintJobUoW {
	args := m.Called()
	return args.Get(0).(ports.PrintJobUoW)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, job *printjob.PrintJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockBroadcaster) RetryBroadcast(ctx context.Context, job *printjob.PrintJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockPrintQueuer struct{ mock.Mock }

func (m *MockPrintQueuer) Queue(ctx context.Context, req services.QueueRequest) (services.RoutingResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(services.RoutingResult), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Dispatch(ctx context.Context, o *order.Order, newStatus, previous order.Status) (services.DispatchSummary, error) {
	args := m.Called(ctx, o, newStatus, previous)
	return args.Get(0).(services.DispatchSummary), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPrintSettingsUpdater struct{ mock.Mock }

func (m *MockPrintSettingsUpdater) Update(
	ctx context.Context,
	changes map[printjob.DocumentType]printsettings.TypeConfig,
) (printsettings.Settings, error) {
	args := m.Called(ctx, changes)
	return args.Get(0).(printsettings.Settings), args.Error(1)
}

type MockNotificationSettingsUpdater struct{ mock.Mock }

func (m *MockNotificationSettingsUpdater) Update(ctx context.Context, settings notification.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// inlineTasks runs submitted tasks immediately and remembers their names
// and, for ordered tasks, their keys.
type inlineTasks struct {
	names []string
	keys  map[string]string
	errs  []error
}

func (r *inlineTasks) Submit(ctx context.Context, name string, task background.Task) {
	r.names = append(r.names, name)
	r.errs = append(r.errs, task(ctx))
}

func (r *inlineTasks) SubmitOrdered(ctx context.Context, key, name string, task background.Task) {
	if r.keys == nil {
		r.keys = make(map[string]string)
	}
	r.keys[name] = key
	r.Submit(ctx, name, task)
}
