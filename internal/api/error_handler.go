package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/api/handler"
	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/guard"
)

// errorResponse is the canonical error envelope of the shell. Status is
// null when the booking API could not be reached.
type errorResponse struct {
	Status    *int             `json:"status"`
	Kind      domain.ErrorKind `json:"kind"`
	Message   string           `json:"message"`
	Path      string           `json:"path"`
	Timestamp string           `json:"timestamp"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders booking API failures with the status matching their kind.
//   - Sends unauthenticated failures to the login page, keeping the
//     requested location.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger, paths guard.Paths) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if domain.IsKind(err, domain.KindUnauthenticated) || errors.Is(err, domain.ErrNotAuthenticated) {
			d := paths.Decide(domain.SessionState{Status: domain.StatusUnauthenticated}, domain.RouteAccessRule{}, c.Request().RequestURI)
			_ = c.Redirect(http.StatusSeeOther, d.Location)
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Booking API failures keep their own envelope.
	if apiErr, ok := domain.AsAPIError(err); ok {
		return apiErr.Kind.HTTPStatus(), errorResponse{
			Status:    apiErr.Status,
			Kind:      apiErr.Kind,
			Message:   apiErr.Message,
			Path:      apiErr.Path,
			Timestamp: apiErr.Timestamp,
		}
	}

	local := func(code int, kind domain.ErrorKind, msg string) (int, errorResponse) {
		return code, errorResponse{
			Status:    &code,
			Kind:      kind,
			Message:   msg,
			Path:      c.Request().URL.Path,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return local(he.Code, domain.ClassifyStatus(he.Code), fmt.Sprintf("%v", he.Message))
	}

	var ve *handler.ValidationError
	switch {
	case errors.As(err, &ve):
		return local(http.StatusBadRequest, domain.KindInvalidInput, ve.Error())
	case errors.Is(err, domain.ErrInvalidRole):
		return local(http.StatusBadRequest, domain.KindInvalidInput, err.Error())
	case errors.Is(err, domain.ErrMalformedResponse):
		log.Warn().Err(err).Str("path", c.Path()).Msg("booking api sent an unreadable response")
		return local(http.StatusBadGateway, domain.KindServer, "The server sent an unexpected response.")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return local(http.StatusInternalServerError, domain.KindUnknown, domain.KindUnknown.UserMessage())
}
