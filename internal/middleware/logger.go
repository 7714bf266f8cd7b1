package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AccessLog records one zap entry per request.
func AccessLog(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}
		if reqID, ok := c.Locals(requestIDHeader).(string); ok {
			fields = append(fields, zap.String("request_id", reqID))
		}

		if err != nil {
			logger.Error("http request error", append(fields, zap.Error(err))...)
			return err
		}
		logger.Info("http request", fields...)
		return nil
	}
}
