package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds surfaced by the service layer. Handlers map these to HTTP
// statuses in one place; everything unrecognized becomes a 500.
const (
	KindInvalidInput    = "INVALID_INPUT"
	KindNotFound        = "NOT_FOUND"
	KindConflict        = "CONFLICT"
	KindUnauthorized    = "UNAUTHORIZED"
	KindExternalService = "EXTERNAL_SERVICE_FAILURE"
	KindPartialBooking  = "PARTIAL_BOOKING_FAILURE"
)

// AppError is a categorized service error.
type AppError struct {
	Kind    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewInvalidInput(msg string) error { return &AppError{Kind: KindInvalidInput, Message: msg} }
func NewNotFound(msg string) error     { return &AppError{Kind: KindNotFound, Message: msg} }
func NewConflict(msg string) error     { return &AppError{Kind: KindConflict, Message: msg} }
func NewUnauthorized(msg string) error { return &AppError{Kind: KindUnauthorized, Message: msg} }

// NewExternalFailure wraps a failed call to an external collaborator. The
// whole operation is safe to retry from the caller's side.
func NewExternalFailure(msg string, err error) error {
	return &AppError{Kind: KindExternalService, Message: msg, Err: err}
}

// NewPartialBookingFailure reports a booking that failed midway but was
// rolled back cleanly.
func NewPartialBookingFailure(msg string, err error) error {
	return &AppError{Kind: KindPartialBooking, Message: msg, Err: err}
}

// Kind extracts the error kind, or "" for uncategorized errors.
func Kind(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

func statusForKind(kind string) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindExternalService, KindPartialBooking:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RespondError writes the JSON error envelope for a service error.
func RespondError(c *gin.Context, err error) {
	kind := Kind(err)
	status := statusForKind(kind)
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		GetLogger().Warn("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, ErrorResponse{Success: false, Message: err.Error(), Code: kind})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", r))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Success: false,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
