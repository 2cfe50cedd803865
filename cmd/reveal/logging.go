package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// logConfig configures the CLI logger.
type logConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer
}

func newLogger(config logConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(config.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	if config.Format == "json" {
		return slog.New(slog.NewJSONHandler(output, opts))
	}
	return slog.New(slog.NewTextHandler(output, opts))
}
