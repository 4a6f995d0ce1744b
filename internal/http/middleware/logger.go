package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"doccenter/internal/logging"
)

// Logger logs each HTTP request as one JSON line:
// request_id, actor, method, path, status and latency (ms, float).
func Logger(lg *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler ran to capture the final status.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		actor, _ := c.Locals(ActorLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		fields := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if actor != "" {
			fields["actor"] = actor
		}
		if status >= fiber.StatusInternalServerError {
			fields["level"] = "error"
		}
		lg.Log(fields)

		return err
	}
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}
