package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/config"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer

	a, err := New(Options{ProjectDir: dir, LogLevel: "debug", LogOutput: &logs})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "mediastack", a.Context.ProjectName)
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), a.Context.ComposeFile)
	assert.Empty(t, a.Context.ComposeCommand, "compose form is only resolved by the preflight")
	assert.NotEmpty(t, a.RunID)
	assert.NotEmpty(t, a.Registry.All())
	assert.NotEmpty(t, a.Endpoints.Endpoints())
	assert.Equal(t, filepath.Join(dir, ".env"), a.Settings.Path())
	assert.Contains(t, logs.String(), "application initialized")
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestConfigKeys(t *testing.T) {
	keys := ConfigKeys()

	assert.Contains(t, keys.Directories, "MEDIA_ROOT")
	assert.Contains(t, keys.Directories, "DOWNLOADS_ROOT")
	assert.True(t, keys.IsSecret("POSTGRES_PASSWORD"))
	assert.False(t, keys.IsSecret("TZ"))
}

func TestResolveLogFilePath(t *testing.T) {
	cfg := config.Config{Project: config.ProjectConfig{Dir: "/srv/stack"}}
	assert.Empty(t, resolveLogFilePath(cfg))

	cfg.Log.File.Enabled = true
	assert.Equal(t, "/srv/stack/logs/mediastack.log", resolveLogFilePath(cfg))

	cfg.Log.File.Path = "/var/log/mediastack.log"
	assert.Equal(t, "/var/log/mediastack.log", resolveLogFilePath(cfg))
}
