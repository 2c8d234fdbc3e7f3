// Package response renders the envelope every HTTP endpoint answers with.
package response

import (
	"net/http"

	deliverycontext "market/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// Response is the envelope for every API reply. RequestID echoes the
// X-Request-Id the middleware assigned so clients can quote it in reports.
type Response struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`    // HTTP status code
	Message   string     `json:"message"` // User-friendly message
	RequestID string     `json:"request_id,omitempty"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the machine-readable part of an error reply.
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "ORDER_NOT_FOUND"
	Details string `json:"details"` // Detailed error description
}

func write(c echo.Context, statusCode int, body Response) error {
	body.Code = statusCode
	body.RequestID = deliverycontext.GetRequestID(c)

	return c.JSON(statusCode, body)
}

// Success renders a successful reply.
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return write(c, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error renders an error reply.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	return ErrorWithData(c, statusCode, errorCode, message, details, nil)
}

// ErrorWithData renders an error reply that still carries a data payload,
// for endpoints that return context alongside the refusal.
func ErrorWithData(c echo.Context, statusCode int, errorCode string, message string, details string, data any) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return write(c, statusCode, Response{
		Success: false,
		Message: message,
		Data:    data,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BadRequest renders a 400 error.
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// BindingError renders a 400 error for unparseable input.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// Unauthorized renders a 401 error.
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message, "")
}

// Forbidden renders a 403 error.
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusForbidden, errorCode, message, "")
}

// NotFound renders a 404 error.
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, "")
}

// Conflict renders a 409 error.
func Conflict(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusConflict, errorCode, message, "")
}

// InternalServerError renders a 500 error.
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
