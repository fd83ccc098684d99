package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/core/application/syncengine"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/generated/servers"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps a use case error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, parcel.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, parcel.ErrAlreadyPaid),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, parcel.ErrPaymentNotAllowed),
		errors.Is(err, parcel.ErrParcelIsFinalized):
		return http.StatusUnprocessableEntity
	case errors.Is(err, syncengine.ErrSyncUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Client errors carry the error text;
// server errors are logged and answered with fallback.
func (s *Server) fail(ctx echo.Context, err error, fallback string) error {
	code := statusOf(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.Error(fallback, "error", err, "method", ctx.Request().Method, "path", ctx.Path())
		if code == http.StatusInternalServerError {
			message = fallback
		}
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
