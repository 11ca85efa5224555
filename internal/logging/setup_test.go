package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/config"
)

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer

	logger, cleanup, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("network already exists", FieldNetwork, "media")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "network already exists")
	assert.Contains(t, buf.String(), "media")
}

func TestNew_FileSink(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "mediastack.log")

	logger, cleanup, err := New(config.LogConfig{
		Level: "info",
		File:  config.LogFileConfig{Enabled: true, Path: path, MaxSize: 1, MaxBackups: 1, MaxAge: 1},
	}, &buf)
	require.NoError(t, err)

	logger.Info("stack started")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stack started")
	assert.Contains(t, buf.String(), "stack started")
}

func TestNew_FileSinkRequiresPath(t *testing.T) {
	_, _, err := New(config.LogConfig{File: config.LogFileConfig{Enabled: true}}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNew_EnvOverridesLevel(t *testing.T) {
	t.Setenv(LevelEnv, "debug")

	logger, cleanup, err := New(config.LogConfig{Level: "error"}, &bytes.Buffer{})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"bogus":   log.InfoLevel,
		"":        log.InfoLevel,
	}

	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "level %q", input)
	}
}
