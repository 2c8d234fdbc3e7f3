// Package context carries request-scoped values between the HTTP layer and
// the usecases without leaking echo types downward.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID names the header the request ID travels in, both on the
// inbound request and on every response.
const HeaderXRequestID = "X-Request-Id"

// echoKeyRequestID keys the request ID inside echo.Context for handlers.
const echoKeyRequestID = "request_id"

// ctxKey keeps this package's context values private to it.
type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyLogger
)

// SetRequestID stores the request ID on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestID returns the request ID stored on the echo context, or an
// empty string when the middleware has not run.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

// WithRequestID attaches the request ID to a standard context so usecases
// and event payloads can correlate their work with the HTTP request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the request ID carried by ctx, or an
// empty string outside a request (workers, startup).
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)

	return id
}

// WithLogger attaches a request-scoped logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// GetLogger returns the request-scoped logger carried by ctx, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(ctxKeyLogger).(*slog.Logger)

	return logger
}

// GetLoggerOrDefault returns the request-scoped logger carried by ctx,
// falling back to the given logger outside a request.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}
