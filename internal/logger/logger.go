package logger

import (
	"log/slog"
	"os"
	"strings"
)

const serviceName = "issuedesk"

// InitLogger configures the process-wide logger. Development gets verbose
// text output with source locations; everything else emits JSON for log
// ingestion. The returned logger is also installed as the slog default.
func InitLogger(environment string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(environment),
	}

	var handler slog.Handler
	if environment == "development" {
		opts.AddSource = true
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", serviceName, "env", environment)
	slog.SetDefault(logger)

	return logger
}

// level resolves the log level. An explicit LOG_LEVEL wins; otherwise
// development defaults to debug and everything else to info.
func level(environment string) slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if environment == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
