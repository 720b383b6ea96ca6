package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/feedsense-backend/internal/config"
)

const appName = "feedsense"

// NewLogger builds the process logger on stderr, tags every record with the
// app name and installs it as the slog default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, cfg)).With(slog.String("app", appName))
	slog.SetDefault(logger)
	return logger
}

// newHandler returns a JSON handler for "json" and a text handler with source
// locations for anything else.
func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	jsonFormat := strings.EqualFold(strings.TrimSpace(cfg.Format), "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !jsonFormat,
	}
	if jsonFormat {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
