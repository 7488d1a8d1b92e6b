package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger emits one structured line per request. Errors returned by
// the chain are rendered through the app's error handler first so the logged
// status matches the response.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.IP()),
		}
		if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("http_request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
		return nil
	}
}
