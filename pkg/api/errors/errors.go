package errors

import (
	"log"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/leaddesk/pkg/domain"
	"github.com/jordanlanch/leaddesk/pkg/models"
)

// Respond writes err as a JSON error response. Domain errors keep their
// message and field details; anything else becomes an opaque 500.
func Respond(c echo.Context, err error) error {
	de, ok := domain.AsDomainError(err)
	if !ok {
		return InternalError(c, err)
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch de.Code {
	case domain.ErrCodeValidation:
		status, code = http.StatusBadRequest, "validation_error"
	case domain.ErrCodeInvalidFilterValue:
		status, code = http.StatusBadRequest, "invalid_filter_value"
	case domain.ErrCodeInvalidPagination:
		status, code = http.StatusBadRequest, "invalid_pagination"
	case domain.ErrCodeNotFound:
		status, code = http.StatusNotFound, "not_found"
	case domain.ErrCodeForbidden:
		status, code = http.StatusForbidden, "forbidden"
	case domain.ErrCodeUnauthorized:
		status, code = http.StatusUnauthorized, "unauthorized"
	default:
		return InternalError(c, err)
	}

	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: de.Message,
		Field:   de.Field,
		Value:   de.Value,
		Details: de.Details,
	})
}

// BadRequest reports a body or form that could not be read at all.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// DatabaseError returns a generic database error without exposing internal details
func DatabaseError(c echo.Context, err error) error {
	log.Printf("[DATABASE ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)
	capture(c, err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: "A database error occurred. Please try again later.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)
	capture(c, err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context, message string) error {
	if message == "" {
		message = "Unauthenticated"
	}
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// ForbiddenError returns a generic forbidden error
func ForbiddenError(c echo.Context, message string) error {
	if message == "" {
		message = "You do not have permission to access this resource."
	}
	return c.JSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "forbidden",
		Message: message,
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: resource + " not found",
	})
}

// capture reports err to Sentry, through the request hub when the sentry
// echo middleware installed one.
func capture(c echo.Context, err error) {
	if hub := sentryecho.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
