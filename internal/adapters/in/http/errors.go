package http

import (
	"errors"
	"log/slog"
	"net/http"

	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/core/ports"
	"statusflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type ErrorReason string

const (
	ReasonInvalidRequest       ErrorReason = "invalid_request"
	ReasonNotFound             ErrorReason = "not_found"
	ReasonTransitionNotAllowed ErrorReason = "transition_not_allowed"
	ReasonTransitionInFlight   ErrorReason = "transition_in_flight"
	ReasonBackendRejected      ErrorReason = "backend_rejected"
	ReasonBackendUnavailable   ErrorReason = "backend_unavailable"
	ReasonInternalError        ErrorReason = "internal_error"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int           `json:"code"`
	Reason  ErrorReason   `json:"reason"`
	Message string        `json:"message"`
	Entity  *EntityStatus `json:"entity,omitempty"`
}

// classify maps a use case error to a status code and reason. A
// TransitionRequestError that is not a rejection means no decision was made.
func classify(err error) (int, ErrorReason) {
	var requestErr *commands.TransitionRequestError
	switch {
	case errors.Is(err, commands.ErrTransitionInFlight):
		return http.StatusConflict, ReasonTransitionInFlight
	case errors.Is(err, commands.ErrTransitionNotAllowed):
		return http.StatusUnprocessableEntity, ReasonTransitionNotAllowed
	case errors.As(err, &requestErr) && requestErr.Rejected():
		return http.StatusConflict, ReasonBackendRejected
	case requestErr != nil, errors.Is(err, ports.ErrBackendUnavailable):
		return http.StatusBadGateway, ReasonBackendUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ReasonNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, ReasonInvalidRequest
	}
	return http.StatusInternalServerError, ReasonInternalError
}

// writeError renders err in the shared error body. Internal errors are logged
// and their text is not sent to the client.
func writeError(ctx echo.Context, logger *slog.Logger, err error, entity *EntityStatus) error {
	code, reason := classify(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, Error{Code: code, Reason: reason, Message: message, Entity: entity})
}

func invalidRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Reason:  ReasonInvalidRequest,
		Message: message,
	})
}

// NewHTTPErrorHandler renders errors escaping the handlers, such as binding
// failures and unknown routes, in the shared error body.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			_ = writeError(ctx, logger, err, nil)
			return
		}

		reason := ReasonInternalError
		switch {
		case httpErr.Code == http.StatusNotFound:
			reason = ReasonNotFound
		case httpErr.Code < http.StatusInternalServerError:
			reason = ReasonInvalidRequest
		}

		body := Error{Code: httpErr.Code, Reason: reason, Message: http.StatusText(httpErr.Code)}
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			body.Message = msg
		}
		if ctx.Request().Method == http.MethodHead {
			_ = ctx.NoContent(httpErr.Code)
			return
		}
		_ = ctx.JSON(httpErr.Code, body)
	}
}
