package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TestContext creates a test context with timeout
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ComposeFixture is a compose file declaring a small stack on external networks.
const ComposeFixture = `services:
  postgres:
    image: postgres:16
    networks: [media]
  sonarr:
    image: lscr.io/linuxserver/sonarr
    networks: [media, downloads]
networks:
  media:
    external: true
  downloads:
    external: true
`

// CreateProjectFs creates an in-memory filesystem holding a compose file and
// an env file under dir.
func CreateProjectFs(t *testing.T, dir, compose, env string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, dir+"/docker-compose.yml", []byte(compose), 0o644))
	if env != "" {
		require.NoError(t, afero.WriteFile(fs, dir+"/.env", []byte(env), 0o600))
	}
	return fs
}
