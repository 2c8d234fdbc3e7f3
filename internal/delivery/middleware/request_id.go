package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "market/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDMiddleware assigns every request an ID and a logger scoped to it.
// The ID is echoed back in the response headers so clients can quote it.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware.
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process resolves the request ID, stamps it onto the response, and threads
// it plus a scoped logger through both echo.Context and context.Context.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := resolveRequestID(c.Request())

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("request_id", requestID))

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// resolveRequestID honors a client-supplied ID so traces can span services,
// and mints a fresh UUID otherwise.
func resolveRequestID(r *http.Request) string {
	if id := r.Header.Get(deliverycontext.HeaderXRequestID); id != "" {
		return id
	}

	return uuid.New().String()
}
