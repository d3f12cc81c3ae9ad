package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
)

type MockOrderStatusChanger struct{ mock.Mock }

func (m *MockOrderStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ChangeOrderStatusResult), args.Error(1)
}

type MockNextStatusesReader struct{ mock.Mock }

func (m *MockNextStatusesReader) Handle(ctx context.Context, q queries.GetNextStatusesQuery) (queries.GetNextStatusesQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetNextStatusesQueryResponse), args.Error(1)
}

type MockPrintJobQueuer struct{ mock.Mock }

func (m *MockPrintJobQueuer) Handle(ctx context.Context, cmd commands.QueuePrintJobCommand) (services.RoutingResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.RoutingResult), args.Error(1)
}

type MockPendingJobsReader struct{ mock.Mock }

func (m *MockPendingJobsReader) Handle(ctx context.Context, q queries.GetPendingPrintJobsQuery) ([]queries.PrintJobResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.PrintJobResponse), args.Error(1)
}

type MockJobHistoryReader struct{ mock.Mock }

func (m *MockJobHistoryReader) Handle(ctx context.Context, q queries.GetPrintJobHistoryQuery) ([]queries.PrintJobResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]queries.PrintJobResponse), args.Error(1)
}

type MockJobStatsReader struct{ mock.Mock }

func (m *MockJobStatsReader) Handle(ctx context.Context, q queries.GetPrintJobStatsQuery) (queries.GetPrintJobStatsQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetPrintJobStatsQueryResponse), args.Error(1)
}

type MockJobStatusUpdater struct{ mock.Mock }

func (m *MockJobStatusUpdater) Handle(ctx context.Context, cmd commands.UpdatePrintJobStatusCommand) (*printjob.PrintJob, error) {
	args := m.Called(ctx, cmd)
	if job := args.Get(0); job != nil {
		return job.(*printjob.PrintJob), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJobRetrier struct{ mock.Mock }

func (m *MockJobRetrier) Handle(ctx context.Context, cmd commands.RetryPrintJobCommand) (*printjob.PrintJob, error) {
	args := m.Called(ctx, cmd)
	if job := args.Get(0); job != nil {
		return job.(*printjob.PrintJob), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJobDeleter struct{ mock.Mock }

func (m *MockJobDeleter) Handle(ctx context.Context, cmd commands.DeletePrintJobCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPrintSettingsReader struct{ mock.Mock }

func (m *MockPrintSettingsReader) Handle(ctx context.Context) (printsettings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(printsettings.Settings), args.Error(1)
}

type MockPrintSettingsWriter struct{ mock.Mock }

func (m *MockPrintSettingsWriter) Handle(ctx context.Context, cmd commands.UpdatePrintSettingsCommand) (printsettings.Settings, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(printsettings.Settings), args.Error(1)
}

type MockNotificationSettingsReader struct{ mock.Mock }

func (m *MockNotificationSettingsReader) Handle(ctx context.Context) (notification.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(notification.Settings), args.Error(1)
}

type MockNotificationSettingsWriter struct{ mock.Mock }

func (m *MockNotificationSettingsWriter) Handle(ctx context.Context, cmd commands.UpdateNotificationSettingsCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockBlobStore struct{ mock.Mock }

func (m *MockBlobStore) Put(ctx context.Context, key string, blob ports.Blob) error {
	return m.Called(ctx, key, blob).Error(0)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (ports.Blob, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.Blob), args.Error(1)
}
