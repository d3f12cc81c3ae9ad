package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"fulfillment/internal/core/application/services"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/printjob"
	"fulfillment/internal/core/domain/model/printsettings"
	"fulfillment/internal/core/ports"
)

// Use cases the server delegates to. Command and query handlers satisfy them.
type (
	OrderStatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
	}
	NextStatusesReader interface {
		Handle(ctx context.Context, q queries.GetNextStatusesQuery) (queries.GetNextStatusesQueryResponse, error)
	}
	PrintJobQueuer interface {
		Handle(ctx context.Context, cmd commands.QueuePrintJobCommand) (services.RoutingResult, error)
	}
	PendingJobsReader interface {
		Handle(ctx context.Context, q queries.GetPendingPrintJobsQuery) ([]queries.PrintJobResponse, error)
	}
	JobHistoryReader interface {
		Handle(ctx context.Context, q queries.GetPrintJobHistoryQuery) ([]queries.PrintJobResponse, error)
	}
	JobStatsReader interface {
		Handle(ctx context.Context, q queries.GetPrintJobStatsQuery) (queries.GetPrintJobStatsQueryResponse, error)
	}
	JobStatusUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdatePrintJobStatusCommand) (*printjob.PrintJob, error)
	}
	JobRetrier interface {
		Handle(ctx context.Context, cmd commands.RetryPrintJobCommand) (*printjob.PrintJob, error)
	}
	JobDeleter interface {
		Handle(ctx context.Context, cmd commands.DeletePrintJobCommand) error
	}
	PrintSettingsReader interface {
		Handle(ctx context.Context) (printsettings.Settings, error)
	}
	PrintSettingsWriter interface {
		Handle(ctx context.Context, cmd commands.UpdatePrintSettingsCommand) (printsettings.Settings, error)
	}
	NotificationSettingsReader interface {
		Handle(ctx context.Context) (notification.Settings, error)
	}
	NotificationSettingsWriter interface {
		Handle(ctx context.Context, cmd commands.UpdateNotificationSettingsCommand) error
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	ChangeOrderStatus          OrderStatusChanger
	GetNextStatuses            NextStatusesReader
	QueuePrintJob              PrintJobQueuer
	GetPendingPrintJobs        PendingJobsReader
	GetPrintJobHistory         JobHistoryReader
	GetPrintJobStats           JobStatsReader
	UpdatePrintJobStatus       JobStatusUpdater
	RetryPrintJob              JobRetrier
	DeletePrintJob             JobDeleter
	GetPrintSettings           PrintSettingsReader
	UpdatePrintSettings        PrintSettingsWriter
	GetNotificationSettings    NotificationSettingsReader
	UpdateNotificationSettings NotificationSettingsWriter
	Documents                  ports.BlobStore
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderId, req.Status, req.EmployeeId, req.Notes)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.h.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ChangeOrderStatusResponse{
		Success:        true,
		Message:        "Order status updated to " + result.Order.Status().String(),
		Order:          toOrderSummary(result.Order),
		PreviousStatus: result.PreviousStatus.String(),
	})
}

// GetNextStatuses handles GET /api/v1/orders/{orderId}/next-statuses.
func (s *Server) GetNextStatuses(ctx echo.Context, orderId openapi_types.UUID) error {
	query, err := queries.NewGetNextStatusesQuery(orderId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	res, err := s.h.GetNextStatuses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, NextStatuses{
		CurrentStatus: res.CurrentStatus.String(),
		OrderType:     res.OrderType.String(),
		NextStatuses:  statusStrings(res.NextStatuses),
	})
}

// QueuePrintJob handles POST /api/v1/print-jobs. A queued job answers 201;
// browser printing and disabled types answer 200.
func (s *Server) QueuePrintJob(ctx echo.Context) error {
	var req QueuePrintJobRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewQueuePrintJobCommand(req.Type, req.OrderId, req.Template, req.Priority)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.h.QueuePrintJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	status := http.StatusOK
	if result.Action == services.ActionQueued {
		status = http.StatusCreated
	}
	return ctx.JSON(status, toRoutingResult(result))
}

// GetPendingPrintJobs handles GET /api/v1/print-jobs/pending.
func (s *Server) GetPendingPrintJobs(ctx echo.Context, params GetPendingPrintJobsParams) error {
	query, err := queries.NewGetPendingPrintJobsQuery(deref(params.AgentId), deref(params.AgentType), deref(params.Limit))
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.h.GetPendingPrintJobs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPrintJobList(rows))
}

// GetPrintJobHistory handles GET /api/v1/print-jobs/history.
func (s *Server) GetPrintJobHistory(ctx echo.Context, params GetPrintJobHistoryParams) error {
	query, err := queries.NewGetPrintJobHistoryQuery(deref(params.Status), deref(params.Limit), deref(params.Offset))
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.h.GetPrintJobHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPrintJobList(rows))
}

// GetPrintJobStats handles GET /api/v1/print-jobs/stats.
func (s *Server) GetPrintJobStats(ctx echo.Context) error {
	stats, err := s.h.GetPrintJobStats.Handle(ctx.Request().Context(), queries.NewGetPrintJobStatsQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PrintJobStats{
		FailedCount:       stats.FailedCount,
		StuckPendingCount: stats.StuckPendingCount,
		TotalIssues:       stats.TotalIssues,
	})
}

// UpdatePrintJobStatus handles PATCH /api/v1/print-jobs/{jobId}/status.
func (s *Server) UpdatePrintJobStatus(ctx echo.Context, jobId openapi_types.UUID) error {
	var req UpdatePrintJobStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewUpdatePrintJobStatusCommand(jobId, req.Status, req.AgentId, req.ErrorMessage)
	if err != nil {
		return s.writeError(ctx, err)
	}

	job, err := s.h.UpdatePrintJobStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PrintJobEnvelope{Success: true, Job: toPrintJob(job)})
}

// RetryPrintJob handles POST /api/v1/print-jobs/{jobId}/retry.
func (s *Server) RetryPrintJob(ctx echo.Context, jobId openapi_types.UUID) error {
	cmd, err := commands.NewRetryPrintJobCommand(jobId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	job, err := s.h.RetryPrintJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PrintJobEnvelope{Success: true, Job: toPrintJob(job)})
}

// DeletePrintJob handles DELETE /api/v1/print-jobs/{jobId}.
func (s *Server) DeletePrintJob(ctx echo.Context, jobId openapi_types.UUID) error {
	cmd, err := commands.NewDeletePrintJobCommand(jobId)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.h.DeletePrintJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPrintDocument handles GET /api/v1/print/documents/{key}, the target of
// browser-print URLs.
func (s *Server) GetPrintDocument(ctx echo.Context, key string) error {
	blob, err := s.h.Documents.Get(ctx.Request().Context(), key)
	if err != nil {
		return s.writeError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+key+`"`)
	return ctx.Blob(http.StatusOK, blob.ContentType, blob.Data)
}

// GetPrintSettings handles GET /api/v1/settings/print.
func (s *Server) GetPrintSettings(ctx echo.Context) error {
	settings, err := s.h.GetPrintSettings.Handle(ctx.Request().Context())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPrintSettings(settings))
}

// UpdatePrintSettings handles PUT /api/v1/settings/print.
func (s *Server) UpdatePrintSettings(ctx echo.Context) error {
	var req PrintSettingsUpdate
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	requested := make(map[string]commands.PrintTypeSettings, len(req.Settings))
	for t, cfg := range req.Settings {
		requested[t] = commands.PrintTypeSettings{
			Enabled:     cfg.Enabled,
			Destination: cfg.Destination,
			Copies:      cfg.Copies,
			PrinterName: deref(cfg.PrinterName),
			PrinterTray: deref(cfg.PrinterTray),
		}
	}

	cmd, err := commands.NewUpdatePrintSettingsCommand(requested)
	if err != nil {
		return s.writeError(ctx, err)
	}

	settings, err := s.h.UpdatePrintSettings.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPrintSettings(settings))
}

// GetNotificationSettings handles GET /api/v1/settings/notifications/order-status.
func (s *Server) GetNotificationSettings(ctx echo.Context) error {
	settings, err := s.h.GetNotificationSettings.Handle(ctx.Request().Context())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettings handles PUT /api/v1/settings/notifications/order-status.
func (s *Server) UpdateNotificationSettings(ctx echo.Context) error {
	var req notification.Settings
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	cmd, err := commands.NewUpdateNotificationSettingsCommand(req)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.h.UpdateNotificationSettings.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cmd.Settings())
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
