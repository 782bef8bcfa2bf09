package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/pkg/logger"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.New().String()

		c.Request().Header.Set("X-Request-ID", requestID)
		c.Response().Header().Set("X-Request-ID", requestID)
		c.Set("request_id", requestID)

		// Request-scoped logger carries the request ID everywhere below
		log := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set("logger", log)

		return next(c)
	}
}
