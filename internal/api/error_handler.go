package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"status": "error", "message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Status: "error", Message: msg})
	}
}

var (
	badRequest = []error{
		domain.ErrValidation,
		domain.ErrDuplicateUser,
		domain.ErrDuplicatePreRegistration,
		domain.ErrNotPreRegistered,
		domain.ErrFieldMismatch,
		domain.ErrSessionFull,
		domain.ErrAlreadyJoined,
		domain.ErrNotParticipant,
		domain.ErrSessionClosed,
		domain.ErrInvalidTransition,
	}
	unauthorized = []error{
		domain.ErrInvalidCredentials,
		domain.ErrUnauthorized,
		service.ErrInvalidToken,
	}
	forbidden = []error{
		domain.ErrForbidden,
		domain.ErrIneligible,
	}
	notFound = []error{
		domain.ErrNotEligible,
		domain.ErrUserNotFound,
		domain.ErrPreRegistrationNotFound,
		domain.ErrSessionNotFound,
		domain.ErrSubmissionNotFound,
		domain.ErrPlacementNotFound,
		domain.ErrNotificationNotFound,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case isAny(err, badRequest):
		return http.StatusBadRequest, err.Error()
	case isAny(err, unauthorized):
		return http.StatusUnauthorized, err.Error()
	case isAny(err, forbidden):
		return http.StatusForbidden, err.Error()
	case isAny(err, notFound):
		return http.StatusNotFound, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
