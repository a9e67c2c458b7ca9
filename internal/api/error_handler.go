package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gotaagota/collections-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "invalid id"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "client not found"
	case errors.Is(err, domain.ErrCollectorNotFound):
		return http.StatusNotFound, "collector not found"
	case errors.Is(err, domain.ErrLoanNotFound):
		return http.StatusNotFound, "loan not found"
	case errors.Is(err, domain.ErrVisitNotFound):
		return http.StatusNotFound, "visit not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "inventory item not found"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, domain.ErrCollectorHasClients):
		return http.StatusConflict, "collector has assigned clients"
	case errors.Is(err, domain.ErrLoanConflict):
		return http.StatusConflict, "loan was modified concurrently, retry"
	case errors.Is(err, domain.ErrInvalidLoanTerms):
		return http.StatusUnprocessableEntity, "invalid loan terms"
	case errors.Is(err, domain.ErrInvalidPayment):
		return http.StatusUnprocessableEntity, "invalid payment amount"
	case errors.Is(err, domain.ErrInvalidLoanStatus),
		errors.Is(err, domain.ErrInvalidVisitStatus),
		errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrInvalidItemStatus),
		errors.Is(err, domain.ErrInvalidRecordStatus):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
