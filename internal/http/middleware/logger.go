package middleware

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"caterapi/internal/model"
)

// Logger logs each HTTP request as one JSON object per line to stdout.
// Fields: ts, request_id, method, path, status, latency (milliseconds) and,
// for authenticated requests, the actor's role.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout)
}

// LoggerWithWriter is Logger with an injectable output, used by tests.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// Collect fields after the handler ran to capture the final status.
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"ts":         start.UTC().Format(time.RFC3339Nano),
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency":    float64(time.Since(start).Milliseconds()),
		}
		if actor, ok := c.Locals(ActorLocalKey).(*model.User); ok && actor != nil {
			entry["actor_type"] = string(actor.Type)
		}
		_ = enc.Encode(entry)

		return err
	}
}
