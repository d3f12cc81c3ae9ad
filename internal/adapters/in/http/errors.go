package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/pkg/errs"
)

// writeError maps application errors to status codes. Anything unknown is a
// 500 and is logged; its message is not sent to the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var transition *errs.InvalidTransitionError
	switch {
	case errors.As(err, &transition):
		allowed := transition.Allowed
		if allowed == nil {
			allowed = []string{}
		}
		return ctx.JSON(http.StatusBadRequest, TransitionErrorResponse{
			Error:              err.Error(),
			AllowedTransitions: allowed,
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrConcurrentModification):
		return ctx.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrInvalidRetryState),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// HTTPErrorHandler renders echo errors (routing, binding, validation) in the
// same shape as application errors.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, ErrorResponse{Error: message})
}
