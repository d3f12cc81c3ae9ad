package services_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/domain/model/document"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/clock"
)

type engineFixture struct {
	settings    *MockSettingsSource
	renderer    *MockRenderer
	blobs       *MockBlobStore
	repo        *MockPrintJobRepository
	uow         *MockPrintJobUoW
	factory     *MockPrintJobUoWFactory
	broadcaster *MockBroadcaster
	engine      *services.PrintRoutingEngine
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		settings:    new(MockSettingsSource),
		renderer:    new(MockRenderer),
		blobs:       new(MockBlobStore),
		repo:        new(MockPrintJobRepository),
		uow:         new(MockPrintJobUoW),
		factory:     new(MockPrintJobUoWFactory),
		broadcaster: new(MockBroadcaster),
	}
	f.engine = services.NewPrintRoutingEngine(services.RoutingEngineDeps{
		Settings:    f.settings,
		Renderer:    f.renderer,
		Blobs:       f.blobs,
		UoWFactory:  f.factory,
		Broadcaster: f.broadcaster,
		DocumentURL: func(key string) string { return "/api/v1/print/documents/" + key },
		Clock:       clock.Fixed(testNow),
		Logger:      discardLogger(),
	})
	return f
}

func (f *engineFixture) expectPersist(t *testing.T) {
	t.Helper()

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.uow.On("PrintJobRepository").Return(f.repo).Once()
	f.repo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func (f *engineFixture) assertExpectations(t *testing.T) {
	t.Helper()

	f.settings.AssertExpectations(t)
	f.renderer.AssertExpectations(t)
	f.blobs.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.broadcaster.AssertExpectations(t)
}

func ticketRequest() services.QueueRequest {
	orderID := uuid.New()
	return services.QueueRequest{
		DocumentType: printjob.OrderTicket,
		OrderID:      &orderID,
		Document:     document.Document{Type: printjob.OrderTicket, OrderNumber: "1042"},
		TemplateID:   "order-ticket-v1",
	}
}

func TestPrintRoutingEngine_Queue_Disabled(t *testing.T) {
	ctx := t.Context()
	f := newEngineFixture()
	f.settings.On("ConfigFor", mock.Anything, printjob.OrderTicket).
		Return(printsettings.TypeConfig{Enabled: false, Destination: printjob.DocumentAgent, Copies: 1}, nil).Once()

	result, err := f.engine.Queue(ctx, ticketRequest())

	require.NoError(t, err)
	assert.Equal(t, services.ActionSkipped, result.Action)
	assert.Equal(t, services.SkipReasonDisabled, result.Reason)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.factory.AssertNotCalled(t, "Create")
	f.assertExpectations(t)
}

func TestPrintRoutingEngine_Queue_Browser(t *testing.T) {
	t.Run("should store a PDF and return its url without creating a job", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.Report).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.Browser, Copies: 2}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, "daily-report").
			Return([]byte("%PDF-1.3"), nil).Once()

		var storedKey string
		f.blobs.On("Put", mock.Anything, mock.AnythingOfType("string"), ports.Blob{ContentType: "application/pdf", Data: []byte("%PDF-1.3")}).
			Run(func(args mock.Arguments) { storedKey = args.String(1) }).
			Return(nil).Once()

		result, err := f.engine.Queue(ctx, services.QueueRequest{
			DocumentType: printjob.Report,
			Document:     document.Document{Type: printjob.Report},
			TemplateID:   "daily-report",
		})

		require.NoError(t, err)
		assert.Equal(t, services.ActionBrowserPrint, result.Action)
		assert.Equal(t, 2, result.Copies)
		assert.True(t, strings.HasSuffix(storedKey, ".pdf"))
		assert.Equal(t, "/api/v1/print/documents/"+storedKey, result.URL)
		assert.Equal(t, uuid.Nil, result.JobID)
		f.factory.AssertNotCalled(t, "Create")
		f.broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should fail when the PDF cannot be rendered", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.Report).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.Browser, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, mock.Anything).
			Return(nil, errors.New("font missing")).Once()

		_, err := f.engine.Queue(ctx, services.QueueRequest{DocumentType: printjob.Report})

		require.Error(t, err)
		f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
		f.factory.AssertNotCalled(t, "Create")
	})
}

func TestPrintRoutingEngine_Queue_Agent(t *testing.T) {
	t.Run("should queue the first format that renders", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.OrderTicket).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.DocumentAgent, Copies: 2, PrinterName: "Office"}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, "order-ticket-v1").
			Return([]byte("%PDF"), nil).Once()

		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("PrintJobRepository").Return(f.repo).Once()
		var added *printjob.PrintJob
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*printjob.PrintJob) }).
			Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()
		f.broadcaster.On("Broadcast", mock.Anything, mock.AnythingOfType("*printjob.PrintJob")).Return(nil).Once()

		req := ticketRequest()
		result, err := f.engine.Queue(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, added)
		assert.Equal(t, services.ActionQueued, result.Action)
		assert.Equal(t, added.ID(), result.JobID)
		assert.Equal(t, printjob.DocumentAgent, result.AgentType)
		assert.Equal(t, 2, result.Copies)
		assert.Equal(t, printjob.FormatPDF, added.Payload().Format())
		assert.Equal(t, printjob.Pending, added.Status())
		assert.Equal(t, 10, added.Priority())
		assert.Equal(t, "Office", added.PrinterName())
		assert.Equal(t, req.OrderID, added.OrderID())
		assert.Equal(t, testNow, added.CreatedAt())
		f.renderer.AssertNotCalled(t, "Render", mock.Anything, printjob.FormatStructured, mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("should fall back to structured when thermal fails", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.Receipt).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.ThermalAgent, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatThermal, mock.Anything, "receipt-v1").
			Return(nil, errors.New("template missing")).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatStructured, mock.Anything, "receipt-v1").
			Return([]byte(`{"title":"Receipt"}`), nil).Once()
		f.expectPersist(t)
		f.broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.engine.Queue(ctx, services.QueueRequest{
			DocumentType: printjob.Receipt,
			TemplateID:   "receipt-v1",
		})

		require.NoError(t, err)
		assert.Equal(t, services.ActionQueued, result.Action)
		assert.Equal(t, printjob.FormatStructured, result.Format)
		f.assertExpectations(t)
	})

	t.Run("should queue without payload when every format fails", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.Label).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.DocumentAgent, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("boom")).Twice()
		f.expectPersist(t)
		f.broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := f.engine.Queue(ctx, services.QueueRequest{DocumentType: printjob.Label})

		require.NoError(t, err)
		assert.Equal(t, services.ActionQueued, result.Action)
		assert.Equal(t, printjob.FormatNone, result.Format)
		assert.Equal(t, 5, f.repo.Calls[0].Arguments.Get(1).(*printjob.PrintJob).Priority())
		f.assertExpectations(t)
	})

	t.Run("should use the caller's priority", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.OrderTicket).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.DocumentAgent, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil).Once()
		f.expectPersist(t)
		f.broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(nil).Once()

		req := ticketRequest()
		priority := 99
		req.Priority = &priority
		_, err := f.engine.Queue(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, 99, f.repo.Calls[0].Arguments.Get(1).(*printjob.PrintJob).Priority())
	})

	t.Run("should report queued when the broadcast fails", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.OrderTicket).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.DocumentAgent, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil).Once()
		f.expectPersist(t)
		f.broadcaster.On("Broadcast", mock.Anything, mock.Anything).Return(errors.New("hub closed")).Once()

		result, err := f.engine.Queue(ctx, ticketRequest())

		require.NoError(t, err)
		assert.Equal(t, services.ActionQueued, result.Action)
	})

	t.Run("should fail when the job cannot be persisted", func(t *testing.T) {
		ctx := t.Context()
		f := newEngineFixture()
		f.settings.On("ConfigFor", mock.Anything, printjob.OrderTicket).
			Return(printsettings.TypeConfig{Enabled: true, Destination: printjob.DocumentAgent, Copies: 1}, nil).Once()
		f.renderer.On("Render", mock.Anything, printjob.FormatPDF, mock.Anything, mock.Anything).Return([]byte("%PDF"), nil).Once()
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", mock.Anything).Return(nil).Once()
		f.uow.On("PrintJobRepository").Return(f.repo).Once()
		f.repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		f.uow.On("Rollback", mock.Anything).Return(nil).Once()

		_, err := f.engine.Queue(ctx, ticketRequest())

		require.Error(t, err)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.broadcaster.AssertNotCalled(t, "Broadcast", mock.Anything, mock.Anything)
	})
}

func TestPrintRoutingEngine_Queue_InvalidType(t *testing.T) {
	f := newEngineFixture()
	_, err := f.engine.Queue(t.Context(), services.QueueRequest{DocumentType: "FAX"})
	require.Error(t, err)
	f.settings.AssertNotCalled(t, "ConfigFor", mock.Anything, mock.Anything)
}
