package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// New returns a JSON line logger. Every record carries "ts" formatted as RFC3339Nano in loc
// instead of slog's default "time" key, and "request_id" when the context has one.
func New(w io.Writer, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
			}
			return a
		},
	})
	return slog.New(contextHandler{h})
}

// Setup builds a stdout logger for the named timezone and installs it as the slog default.
// Unknown timezone names fall back to UTC.
func Setup(tz string) (*slog.Logger, *time.Location) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	l := New(os.Stdout, loc)
	slog.SetDefault(l)
	return l, loc
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
