package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BaseURL is the prefix of every API route.
const BaseURL = "/api/v1"

// GetPendingPrintJobsParams defines parameters for GetPendingPrintJobs.
type GetPendingPrintJobsParams struct {
	AgentId   *string `form:"agentId,omitempty" json:"agentId,omitempty"`
	AgentType *string `form:"agentType,omitempty" json:"agentType,omitempty"`
	Limit     *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetPrintJobHistoryParams defines parameters for GetPrintJobHistory.
type GetPrintJobHistoryParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int    `form:"offset,omitempty" json:"offset,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (PATCH /orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /orders/{orderId}/next-statuses)
	GetNextStatuses(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /print-jobs)
	QueuePrintJob(ctx echo.Context) error
	// (GET /print-jobs/pending)
	GetPendingPrintJobs(ctx echo.Context, params GetPendingPrintJobsParams) error
	// (GET /print-jobs/history)
	GetPrintJobHistory(ctx echo.Context, params GetPrintJobHistoryParams) error
	// (GET /print-jobs/stats)
	GetPrintJobStats(ctx echo.Context) error
	// (PATCH /print-jobs/{jobId}/status)
	UpdatePrintJobStatus(ctx echo.Context, jobId openapi_types.UUID) error
	// (POST /print-jobs/{jobId}/retry)
	RetryPrintJob(ctx echo.Context, jobId openapi_types.UUID) error
	// (DELETE /print-jobs/{jobId})
	DeletePrintJob(ctx echo.Context, jobId openapi_types.UUID) error
	// (GET /print/documents/{key})
	GetPrintDocument(ctx echo.Context, key string) error
	// (GET /settings/print)
	GetPrintSettings(ctx echo.Context) error
	// (PUT /settings/print)
	UpdatePrintSettings(ctx echo.Context) error
	// (GET /settings/notifications/order-status)
	GetNotificationSettings(ctx echo.Context) error
	// (PUT /settings/notifications/order-status)
	UpdateNotificationSettings(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetNextStatuses(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetNextStatuses(ctx, orderId)
}

func (w *ServerInterfaceWrapper) QueuePrintJob(ctx echo.Context) error {
	return w.Handler.QueuePrintJob(ctx)
}

func (w *ServerInterfaceWrapper) GetPendingPrintJobs(ctx echo.Context) error {
	var params GetPendingPrintJobsParams

	if err := runtime.BindQueryParameter("form", true, false, "agentId", ctx.QueryParams(), &params.AgentId); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter agentId: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "agentType", ctx.QueryParams(), &params.AgentType); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter agentType: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetPendingPrintJobs(ctx, params)
}

func (w *ServerInterfaceWrapper) GetPrintJobHistory(ctx echo.Context) error {
	var params GetPrintJobHistoryParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &params.Offset); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}

	return w.Handler.GetPrintJobHistory(ctx, params)
}

func (w *ServerInterfaceWrapper) GetPrintJobStats(ctx echo.Context) error {
	return w.Handler.GetPrintJobStats(ctx)
}

func (w *ServerInterfaceWrapper) UpdatePrintJobStatus(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.UpdatePrintJobStatus(ctx, jobId)
}

func (w *ServerInterfaceWrapper) RetryPrintJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.RetryPrintJob(ctx, jobId)
}

func (w *ServerInterfaceWrapper) DeletePrintJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.DeletePrintJob(ctx, jobId)
}

func (w *ServerInterfaceWrapper) GetPrintDocument(ctx echo.Context) error {
	var key string

	err := runtime.BindStyledParameterWithOptions("simple", "key", ctx.Param("key"), &key,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter key: %s", err))
	}

	return w.Handler.GetPrintDocument(ctx, key)
}

func (w *ServerInterfaceWrapper) GetPrintSettings(ctx echo.Context) error {
	return w.Handler.GetPrintSettings(ctx)
}

func (w *ServerInterfaceWrapper) UpdatePrintSettings(ctx echo.Context) error {
	return w.Handler.UpdatePrintSettings(ctx)
}

func (w *ServerInterfaceWrapper) GetNotificationSettings(ctx echo.Context) error {
	return w.Handler.GetNotificationSettings(ctx)
}

func (w *ServerInterfaceWrapper) UpdateNotificationSettings(ctx echo.Context) error {
	return w.Handler.UpdateNotificationSettings(ctx)
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}

	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, BaseURL)
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.PATCH(baseURL+"/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.GET(baseURL+"/orders/:orderId/next-statuses", wrapper.GetNextStatuses)
	router.POST(baseURL+"/print-jobs", wrapper.QueuePrintJob)
	router.GET(baseURL+"/print-jobs/pending", wrapper.GetPendingPrintJobs)
	router.GET(baseURL+"/print-jobs/history", wrapper.GetPrintJobHistory)
	router.GET(baseURL+"/print-jobs/stats", wrapper.GetPrintJobStats)
	router.PATCH(baseURL+"/print-jobs/:jobId/status", wrapper.UpdatePrintJobStatus)
	router.POST(baseURL+"/print-jobs/:jobId/retry", wrapper.RetryPrintJob)
	router.DELETE(baseURL+"/print-jobs/:jobId", wrapper.DeletePrintJob)
	router.GET(baseURL+"/print/documents/:key", wrapper.GetPrintDocument)
	router.GET(baseURL+"/settings/print", wrapper.GetPrintSettings)
	router.PUT(baseURL+"/settings/print", wrapper.UpdatePrintSettings)
	router.GET(baseURL+"/settings/notifications/order-status", wrapper.GetNotificationSettings)
	router.PUT(baseURL+"/settings/notifications/order-status", wrapper.UpdateNotificationSettings)
}
