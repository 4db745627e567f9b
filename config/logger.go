package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger from GO_ENV, LOG_LEVEL, and LOG_FORMAT.
// Production defaults to JSON output, everything else to text; LOG_FORMAT
// (json|text) overrides that. LOG_LEVEL accepts debug, info, warn, or error
// and defaults to info.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	format := os.Getenv("LOG_FORMAT")
	if format == "" && os.Getenv("GO_ENV") == "production" {
		format = "json"
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
