// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bnema/mediastack/internal/config"
)

// Field names shared by every layer.
const (
	FieldLayer    = "layer"
	FieldUseCase  = "usecase"
	FieldAdapter  = "adapter"
	FieldAction   = "action"
	FieldCount    = "count"
	FieldRun      = "run"
	FieldService  = "service"
	FieldNetwork  = "network"
	FieldResource = "resource"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "MEDIASTACK_LOG_LEVEL"

// New creates the logger described by cfg. Console output goes to w.
// The returned cleanup closes the file sink, if any.
func New(cfg config.LogConfig, w io.Writer) (*log.Logger, func(), error) {
	cleanup := func() {}

	level := ParseLevel(cfg.Level)
	if env := os.Getenv(LevelEnv); env != "" {
		level = ParseLevel(env)
	}

	out := w
	if cfg.File.Enabled {
		path := cfg.File.Path
		if path == "" {
			return nil, cleanup, fmt.Errorf("log.file.path is required when file logging is enabled")
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, cleanup, fmt.Errorf("failed to create log directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   true,
		}
		out = io.MultiWriter(w, fileWriter)
		cleanup = func() { _ = fileWriter.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	return logger, cleanup, nil
}

// ParseLevel converts a level name, defaulting to info for unknown values.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
