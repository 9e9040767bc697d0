package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"registration/pkg/platform/privacy"
)

// Options selects the level and output format of the logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New returns a structured logger using slog. JSON is the default format;
// "text" selects the human-readable handler. PII attributes are redacted
// by key in both formats.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: privacy.RedactAttr,
	}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything
// else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
