package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		installed  []string
		pluginFail bool
		configured string
		want       []string
		wantErr    error
	}{
		{name: "docker plugin", installed: []string{"docker", "docker-compose"}, configured: "auto", want: DockerPlugin},
		{name: "legacy when plugin missing", installed: []string{"docker", "docker-compose"}, pluginFail: true, configured: "auto", want: DockerLegacy},
		{name: "podman fallback", installed: []string{"podman-compose"}, configured: "", want: PodmanCompose},
		{name: "nothing installed", configured: "auto", wantErr: domain.ErrComposeUnavailable},
		{name: "explicit form", installed: []string{"docker-compose"}, configured: "docker-compose", want: DockerLegacy},
		{name: "explicit form not installed", configured: "podman-compose", wantErr: domain.ErrComposeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			for _, bin := range tt.installed {
				runner.installed[bin] = true
			}
			if tt.pluginFail {
				runner.responses["docker compose version"] = response{err: errors.New("docker: 'compose' is not a docker command")}
			}

			form, err := Detect(context.Background(), runner, tt.configured)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, form)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		form    []string
		version string
		wantErr error
	}{
		{name: "current plugin", form: DockerPlugin, version: "v2.24.5"},
		{name: "desktop prerelease suffix", form: DockerPlugin, version: "2.24.5-desktop.1"},
		{name: "plugin too old", form: DockerPlugin, version: "1.29.2", wantErr: domain.ErrComposeTooOld},
		{name: "legacy binary not gated", form: DockerLegacy, version: "1.29.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.form, tt.version)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("Docker Compose version v2.27.0")
	require.NoError(t, err)
	assert.Equal(t, "2.27.0", v.String())

	_, err = ParseVersion("no digits here")
	assert.Error(t, err)
}
