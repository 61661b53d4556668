package middleware

import (
	"context"
	"time"

	"chainsaw-registry/pkg/contextkeys"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// InjectLogger stores a request-scoped logger under "logger" and tags it with
// a request id, reusing X-Request-ID when the client sends one.
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := context.WithValue(c.Request().Context(), contextkeys.RequestIDKey, requestID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("logger", logger.With(zap.String("request_id", requestID)))
			return next(c)
		}
	}
}

// RequestLogger logs one line per request after the handler returns.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			requestID, _ := c.Request().Context().Value(contextkeys.RequestIDKey).(string)
			logger.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			)
			return nil
		}
	}
}
