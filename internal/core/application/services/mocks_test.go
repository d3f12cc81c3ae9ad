package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
)

type MockPrintSettingsRepository struct{ mock.Mock }

func (m *MockPrintSettingsRepository) GetOrCreate(ctx context.Context, defaults printsettings.Settings) (printsettings.Settings, error) {
	args := m.Called(ctx, defaults)
	return args.Get(0).(printsettings.Settings), args.Error(1)
}

func (m *MockPrintSettingsRepository) Save(ctx context.Context, settings printsettings.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockNotificationSettingsRepository struct{ mock.Mock }

func (m *MockNotificationSettingsRepository) Get(ctx context.Context, family notification.Family) (notification.Settings, bool, error) {
	args := m.Called(ctx, family)
	return args.Get(0).(notification.Settings), args.Bool(1), args.Error(2)
}

func (m *MockNotificationSettingsRepository) Save(ctx context.Context, family notification.Family, settings notification.Settings) error {
	args := m.Called(ctx, family, settings)
	return args.Error(0)
}

type MockCommunicationRepository struct{ mock.Mock }

func (m *MockCommunicationRepository) Add(ctx context.Context, record notification.CommunicationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockSettingsSource struct{ mock.Mock }

func (m *MockSettingsSource) ConfigFor(ctx context.Context, t printjob.DocumentType) (printsettings.TypeConfig, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(printsettings.TypeConfig), args.Error(1)
}

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) Render(ctx context.Context, format printjob.Format, doc document.Document, templateID string) ([]byte, error) {
	args := m.Called(ctx, format, doc, templateID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, key string, blob ports.Blob) error {
	args := m.Called(ctx, key, blob)
	return args.Error(0)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (ports.Blob, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.Blob), args.Error(1)
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

type MockTransport struct{ mock.Mock }

func (m *MockTransport) Send(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockTransport) Provider() string {
	return "mock-gateway"
}
