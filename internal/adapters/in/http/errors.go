package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errBadRequestBody wraps body and parameter decoding failures.
var errBadRequestBody = errors.New("invalid request")

// statusOf maps an application error onto an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, wizard.ErrSessionBusy),
		errors.Is(err, wizard.ErrTransitionNotAllowed),
		errors.Is(err, commands.ErrDraftIsNotEditable),
		errors.Is(err, commands.ErrOrderTypeIsLocked),
		errors.Is(err, commands.ErrRatesUnavailable):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequestBody),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrFieldValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrRemoteCall):
		return http.StatusBadGateway
	case errors.Is(err, queries.ErrJournalIsNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders application errors as Error bodies and leaves
// echo's own errors (unknown route, bad method) to fallback.
func (s *Server) errorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if errors.As(err, &he) || c.Response().Committed {
			fallback(err, c)
			return
		}

		status := statusOf(err)
		body := Error{Code: status, Message: err.Error()}
		if status == http.StatusInternalServerError {
			s.logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
			body.Message = http.StatusText(status)
		}
		var fe errs.FieldErrors
		if errors.As(err, &fe) {
			body.FieldErrors = fe
		}

		if writeErr := c.JSON(status, body); writeErr != nil {
			s.logger.ErrorContext(c.Request().Context(), "Error response not written", "error", writeErr)
		}
	}
}
