package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestInitLoggerLevelPerEnvironment(t *testing.T) {
	orig := os.Getenv("LOG_LEVEL")
	os.Unsetenv("LOG_LEVEL")
	defer os.Setenv("LOG_LEVEL", orig)

	dev := InitLogger("development")
	if !dev.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("development must log at debug level")
	}

	prod := InitLogger("production")
	if prod.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("production must not log at debug level")
	}
	if !prod.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("production must log at info level")
	}
}

func TestInitLoggerLevelOverride(t *testing.T) {
	orig := os.Getenv("LOG_LEVEL")
	os.Setenv("LOG_LEVEL", "warn")
	defer os.Setenv("LOG_LEVEL", orig)

	logger := InitLogger("development")
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("LOG_LEVEL=warn must suppress info logs")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("LOG_LEVEL=warn must keep warn logs")
	}
}
