package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/logging"
)

// Logger logs each HTTP request as one JSON line on stdout with the fields
// request_id, method, path, status and latency (milliseconds, float).
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout, time.UTC)
}

// LoggerWithWriter is Logger with a custom destination and timestamp location.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return LoggerWith(logging.New(w, loc))
}

// LoggerWith logs requests through l.
func LoggerWith(l *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := responseStatus(c, err)
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}

		// request_id is set explicitly so the line has it even without RequestID upstream.
		l.LogAttrs(context.Background(), level, "http_request",
			slog.String("request_id", RequestIDFrom(c)),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		)

		return err
	}
}
