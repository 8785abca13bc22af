package serverutils

import (
	"time"

	"ai-concierge-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLoggerMiddleware records every request through the structured
// logger once the handler chain has completed. It sits outermost, so the
// status it sees is the one written to the client.
func RequestLoggerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         ctx.IP(),
		}

		if err != nil {
			details["error"] = err.Error()
			log.Error("http", "Request failed", details)
			return err
		}

		log.Info("http", "Request completed", details)
		return nil
	}
}
