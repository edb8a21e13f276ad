package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/example/saluvia/internal/logging"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "requestID"
)

// RequestLog tags each request with an id, echoed in X-Request-ID, and writes
// one access log line once the handler chain returns.
func RequestLog(entry *log.Entry) fiber.Handler {
	if entry == nil {
		entry = logging.WithComponent("http")
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(requestIDContextKey, requestID)
		c.Set(requestIDHeader, requestID)

		chainErr := c.Next()
		if chainErr != nil {
			// Render the error now so the logged status is the one sent.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := log.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start).String(),
		}

		logger := entry.WithFields(fields)
		if chainErr != nil {
			logger = logger.WithError(chainErr)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed")
		case status >= fiber.StatusBadRequest:
			logger.Warn("request rejected")
		default:
			logger.Info("request served")
		}

		return nil
	}
}

// RequestID returns the id RequestLog assigned to the request.
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}
