package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	api "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type ServerTestSuite struct {
	suite.Suite

	e *echo.Echo

	changeStatus  *MockOrderStatusChanger
	nextStatuses  *MockNextStatusesReader
	queue         *MockPrintJobQueuer
	pending       *MockPendingJobsReader
	history       *MockJobHistoryReader
	stats         *MockJobStatsReader
	updateJob     *MockJobStatusUpdater
	retry         *MockJobRetrier
	deleteJob     *MockJobDeleter
	printRead     *MockPrintSettingsReader
	printWrite    *MockPrintSettingsWriter
	notifyRead    *MockNotificationSettingsReader
	notifyWrite   *MockNotificationSettingsWriter
	documentStore *MockBlobStore
}

func (suite *ServerTestSuite) SetupTest() {
	suite.changeStatus = new(MockOrderStatusChanger)
	suite.nextStatuses = new(MockNextStatusesReader)
	suite.queue = new(MockPrintJobQueuer)
	suite.pending = new(MockPendingJobsReader)
	suite.history = new(MockJobHistoryReader)
	suite.stats = new(MockJobStatsReader)
	suite.updateJob = new(MockJobStatusUpdater)
	suite.retry = new(MockJobRetrier)
	suite.deleteJob = new(MockJobDeleter)
	suite.printRead = new(MockPrintSettingsReader)
	suite.printWrite = new(MockPrintSettingsWriter)
	suite.notifyRead = new(MockNotificationSettingsReader)
	suite.notifyWrite = new(MockNotificationSettingsWriter)
	suite.documentStore = new(MockBlobStore)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := api.NewServer(api.Handlers{
		ChangeOrderStatus:          suite.changeStatus,
		GetNextStatuses:            suite.nextStatuses,
		QueuePrintJob:              suite.queue,
		GetPendingPrintJobs:        suite.pending,
		GetPrintJobHistory:         suite.history,
		GetPrintJobStats:           suite.stats,
		UpdatePrintJobStatus:       suite.updateJob,
		RetryPrintJob:              suite.retry,
		DeletePrintJob:             suite.deleteJob,
		GetPrintSettings:           suite.printRead,
		UpdatePrintSettings:        suite.printWrite,
		GetNotificationSettings:    suite.notifyRead,
		UpdateNotificationSettings: suite.notifyWrite,
		Documents:                  suite.documentStore,
	}, logger)

	e, err := api.NewRouter(context.Background(), api.RouterConfig{Server: server, Logger: logger})
	suite.Require().NoError(err)
	suite.e = e
}

func (suite *ServerTestSuite) do(method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func (suite *ServerTestSuite) newOrder(status order.Status) *order.Order {
	o, err := order.NewOrder(order.Attributes{
		ID:     uuid.New(),
		Number: 1042,
		Type:   order.Delivery,
		Status: status,
		Customer: &order.Customer{
			ID:        uuid.New(),
			FirstName: "Ava",
			LastName:  "Stone",
			Email:     "ava@example.com",
		},
	})
	suite.Require().NoError(err)
	return o
}

func (suite *ServerTestSuite) newJob() *printjob.PrintJob {
	job, err := printjob.NewPrintJob(printjob.Spec{
		DocumentType: printjob.OrderTicket,
		Payload:      printjob.PDFPayload([]byte("%PDF")),
		AgentType:    printjob.DocumentAgent,
		Copies:       1,
		Priority:     5,
		TemplateID:   "order-ticket-v1",
	}, time.Date(2026, time.February, 14, 9, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return job
}

func (suite *ServerTestSuite) TestHealthAndDocument() {
	rec, _ := suite.do(http.MethodGet, "/health", "")
	suite.Equal(http.StatusOK, rec.Code)

	rec, body := suite.do(http.MethodGet, "/openapi.json", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("3.0.3", body["openapi"])
}

func (suite *ServerTestSuite) TestChangeOrderStatus_Success() {
	updated := suite.newOrder(order.Ready)
	suite.changeStatus.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID() == updated.ID() && cmd.Status() == order.Ready && cmd.ActorID() == "emp-7"
	})).Return(commands.ChangeOrderStatusResult{Order: updated, PreviousStatus: order.InDesign}, nil)

	rec, body := suite.do(http.MethodPatch, "/api/v1/orders/"+updated.ID().String()+"/status",
		`{"status":"READY","employeeId":"emp-7"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal(true, body["success"])
	suite.Equal("Order status updated to READY", body["message"])
	suite.Equal("IN_DESIGN", body["previousStatus"])
	summary := body["order"].(map[string]any)
	suite.Equal("READY", summary["status"])
	suite.Equal("DELIVERY", summary["type"])
	suite.Equal("Ava", summary["customer"].(map[string]any)["firstName"])
}

func (suite *ServerTestSuite) TestChangeOrderStatus_InvalidTransition() {
	id := uuid.New()
	suite.changeStatus.On("Handle", mock.Anything, mock.Anything).Return(commands.ChangeOrderStatusResult{},
		errs.NewInvalidTransitionError("order", "READY", "OUT_FOR_DELIVERY", []string{"COMPLETED", "CANCELLED"}))

	rec, body := suite.do(http.MethodPatch, "/api/v1/orders/"+id.String()+"/status", `{"status":"OUT_FOR_DELIVERY"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal([]any{"COMPLETED", "CANCELLED"}, body["allowedTransitions"])
}

func (suite *ServerTestSuite) TestChangeOrderStatus_ErrorMapping() {
	cases := map[error]int{
		errs.NewObjectNotFoundError("order", "x"):         http.StatusNotFound,
		errs.NewConcurrentModificationError("order", "x"): http.StatusConflict,
		context.DeadlineExceeded:                          http.StatusInternalServerError,
	}
	for err, code := range cases {
		suite.SetupTest()
		suite.changeStatus.On("Handle", mock.Anything, mock.Anything).Return(commands.ChangeOrderStatusResult{}, err)

		rec, body := suite.do(http.MethodPatch, "/api/v1/orders/"+uuid.NewString()+"/status", `{"status":"PAID"}`)

		suite.Equal(code, rec.Code, err.Error())
		suite.NotEmpty(body["error"])
	}
}

func (suite *ServerTestSuite) TestChangeOrderStatus_RejectedBeforeHandler() {
	rec, _ := suite.do(http.MethodPatch, "/api/v1/orders/"+uuid.NewString()+"/status", `{"status":"SHIPPED"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = suite.do(http.MethodPatch, "/api/v1/orders/"+uuid.NewString()+"/status", `{}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = suite.do(http.MethodPatch, "/api/v1/orders/not-a-uuid/status", `{"status":"PAID"}`)
	suite.Equal(http.StatusBadRequest, rec.Code)

	suite.changeStatus.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestGetNextStatuses() {
	id := uuid.New()
	suite.nextStatuses.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetNextStatusesQuery) bool {
		return q.OrderID() == id
	})).Return(queries.GetNextStatusesQueryResponse{
		CurrentStatus: order.Ready,
		OrderType:     order.Pickup,
		NextStatuses:  []order.Status{order.Completed, order.Cancelled},
	}, nil)

	rec, body := suite.do(http.MethodGet, "/api/v1/orders/"+id.String()+"/next-statuses", "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("READY", body["currentStatus"])
	suite.Equal("PICKUP", body["orderType"])
	suite.Equal([]any{"COMPLETED", "CANCELLED"}, body["nextStatuses"])
}

func (suite *ServerTestSuite) TestQueuePrintJob_StatusDependsOnAction() {
	jobID := uuid.New()
	suite.queue.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.QueuePrintJobCommand) bool {
		return cmd.DocumentType() == printjob.Receipt
	})).Return(services.RoutingResult{
		Action:       services.ActionQueued,
		DocumentType: printjob.Receipt,
		JobID:        jobID,
		AgentType:    printjob.ThermalAgent,
		Format:       printjob.FormatThermal,
		Copies:       1,
	}, nil)
	suite.queue.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.QueuePrintJobCommand) bool {
		return cmd.DocumentType() == printjob.Report
	})).Return(services.RoutingResult{
		Action:       services.ActionBrowserPrint,
		DocumentType: printjob.Report,
		URL:          "/api/v1/print/documents/abc.pdf",
		Format:       printjob.FormatPDF,
		Copies:       1,
	}, nil)

	rec, body := suite.do(http.MethodPost, "/api/v1/print-jobs", `{"type":"RECEIPT","orderId":"`+uuid.NewString()+`"}`)
	suite.Equal(http.StatusCreated, rec.Code)
	suite.Equal("queued", body["action"])
	suite.Equal(jobID.String(), body["jobId"])
	suite.Equal("thermal", body["format"])

	rec, body = suite.do(http.MethodPost, "/api/v1/print-jobs", `{"type":"REPORT"}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("browser-print", body["action"])
	suite.Equal("/api/v1/print/documents/abc.pdf", body["url"])
	suite.Nil(body["jobId"])
}

func (suite *ServerTestSuite) TestQueuePrintJob_UnknownType() {
	rec, _ := suite.do(http.MethodPost, "/api/v1/print-jobs", `{"type":"INVOICE"}`)

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.queue.AssertNotCalled(suite.T(), "Handle", mock.Anything, mock.Anything)
}

func (suite *ServerTestSuite) TestGetPendingPrintJobs() {
	job := suite.newJob()
	delivery := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	suite.pending.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPendingPrintJobsQuery) bool {
		return q.AgentID() == "agent-1" && q.AgentType() == printjob.DocumentAgent && q.Limit() == 5
	})).Return([]queries.PrintJobResponse{{
		Job: job,
		Order: &queries.OrderContext{
			OrderNumber:   1042,
			Status:        order.Paid,
			Type:          order.Delivery,
			CustomerName:  "Ava Stone",
			RecipientName: "Mia Lee",
			DeliveryDate:  &delivery,
			CardMessage:   "Happy birthday",
		},
	}}, nil)

	rec, body := suite.do(http.MethodGet, "/api/v1/print-jobs/pending?agentId=agent-1&agentType=document-agent&limit=5", "")

	suite.Equal(http.StatusOK, rec.Code)
	jobs := body["jobs"].([]any)
	suite.Len(jobs, 1)
	view := jobs[0].(map[string]any)
	suite.Equal(job.ID().String(), view["id"])
	suite.Equal("PENDING", view["status"])
	suite.Equal("pdf", view["payload"].(map[string]any)["format"])
	oc := view["order"].(map[string]any)
	suite.Equal("2026-02-14", oc["deliveryDate"])
	suite.Equal("Mia Lee", oc["recipientName"])
}

func (suite *ServerTestSuite) TestGetPendingPrintJobs_BadAgentType() {
	rec, _ := suite.do(http.MethodGet, "/api/v1/print-jobs/pending?agentType=browser", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestGetPrintJobHistoryAndStats() {
	suite.history.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetPrintJobHistoryQuery) bool {
		return q.Status() == printjob.Failed && q.Limit() == 20 && q.Offset() == 40
	})).Return([]queries.PrintJobResponse{}, nil)
	suite.stats.On("Handle", mock.Anything, mock.Anything).Return(queries.GetPrintJobStatsQueryResponse{
		FailedCount: 2, StuckPendingCount: 1, TotalIssues: 3,
	}, nil)

	rec, body := suite.do(http.MethodGet, "/api/v1/print-jobs/history?status=FAILED&limit=20&offset=40", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal([]any{}, body["jobs"])

	rec, body = suite.do(http.MethodGet, "/api/v1/print-jobs/stats", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.InDelta(3, body["totalIssues"], 0)
}

func (suite *ServerTestSuite) TestUpdatePrintJobStatus() {
	job := suite.newJob()
	_, err := job.ChangeStatus(printjob.Printing, "agent-1", "", time.Now())
	suite.Require().NoError(err)
	suite.updateJob.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdatePrintJobStatusCommand) bool {
		return cmd.JobID() == job.ID() && cmd.Status() == printjob.Printing && cmd.AgentID() == "agent-1"
	})).Return(job, nil)

	rec, body := suite.do(http.MethodPatch, "/api/v1/print-jobs/"+job.ID().String()+"/status",
		`{"status":"PRINTING","agentId":"agent-1"}`)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("PRINTING", body["job"].(map[string]any)["status"])
}

func (suite *ServerTestSuite) TestRetryPrintJob_InvalidState() {
	id := uuid.New()
	suite.retry.On("Handle", mock.Anything, mock.Anything).Return(nil, errs.NewInvalidRetryStateError(id, "PENDING"))

	rec, body := suite.do(http.MethodPost, "/api/v1/print-jobs/"+id.String()+"/retry", "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(body["error"], "PENDING")
}

func (suite *ServerTestSuite) TestDeletePrintJob() {
	id := uuid.New()
	suite.deleteJob.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeletePrintJobCommand) bool {
		return cmd.JobID() == id
	})).Return(nil)

	rec, _ := suite.do(http.MethodDelete, "/api/v1/print-jobs/"+id.String(), "")

	suite.Equal(http.StatusNoContent, rec.Code)
}

func (suite *ServerTestSuite) TestGetPrintDocument() {
	key := uuid.NewString() + ".pdf"
	suite.documentStore.On("Get", mock.Anything, key).Return(ports.Blob{ContentType: "application/pdf", Data: []byte("%PDF-1.3")}, nil)

	rec, _ := suite.do(http.MethodGet, "/api/v1/print/documents/"+key, "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("application/pdf", rec.Header().Get(echo.HeaderContentType))
	suite.Equal("%PDF-1.3", rec.Body.String())
}

func (suite *ServerTestSuite) TestGetPrintDocument_Expired() {
	key := uuid.NewString() + ".pdf"
	suite.documentStore.On("Get", mock.Anything, key).Return(ports.Blob{}, errs.NewObjectNotFoundError("document", key))

	rec, _ := suite.do(http.MethodGet, "/api/v1/print/documents/"+key, "")

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestPrintSettings() {
	suite.printRead.On("Handle", mock.Anything).Return(printsettings.Defaults(), nil)
	updated, err := printsettings.Defaults().With(map[printjob.DocumentType]printsettings.TypeConfig{
		printjob.Receipt: {Enabled: false, Destination: printjob.ThermalAgent, Copies: 2, PrinterName: "Front"},
	}, time.Now())
	suite.Require().NoError(err)
	suite.printWrite.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdatePrintSettingsCommand) bool {
		cfg, ok := cmd.Changes()[printjob.Receipt]
		return ok && !cfg.Enabled && cfg.PrinterName == "Front"
	})).Return(updated, nil)

	rec, body := suite.do(http.MethodGet, "/api/v1/settings/print", "")
	suite.Equal(http.StatusOK, rec.Code)
	settings := body["settings"].(map[string]any)
	suite.Equal("browser", settings["REPORT"].(map[string]any)["destination"])

	rec, body = suite.do(http.MethodPut, "/api/v1/settings/print",
		`{"settings":{"RECEIPT":{"enabled":false,"destination":"thermal-agent","copies":2,"printerName":"Front"}}}`)
	suite.Equal(http.StatusOK, rec.Code)
	receipt := body["settings"].(map[string]any)["RECEIPT"].(map[string]any)
	suite.Equal(false, receipt["enabled"])
	suite.Equal("Front", receipt["printerName"])
}

func (suite *ServerTestSuite) TestNotificationSettings() {
	defaults, err := notification.DefaultSettings()
	suite.Require().NoError(err)
	suite.notifyRead.On("Handle", mock.Anything).Return(defaults, nil)
	suite.notifyWrite.On("Handle", mock.Anything, mock.Anything).Return(nil)

	rec, body := suite.do(http.MethodGet, "/api/v1/settings/notifications/order-status", "")
	suite.Equal(http.StatusOK, rec.Code)
	suite.NotEmpty(body["statusNotifications"])

	rec, body = suite.do(http.MethodPut, "/api/v1/settings/notifications/order-status",
		`{"globalEmailEnabled":false,"globalSmsEnabled":true,"statusNotifications":[{"status":"READY","customerSmsEnabled":true,"customerSmsTemplate":"Ready!"}]}`)
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal(true, body["globalSmsEnabled"])
	suite.notifyWrite.AssertNumberOfCalls(suite.T(), "Handle", 1)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
