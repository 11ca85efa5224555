package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/mediastack/internal/boundaries/out/mocks"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

var testKeys = domain.ConfigKeys{
	Directories: []string{"MEDIA_ROOT", "TV_PATH", "DOWNLOADS_ROOT", "TORRENTS_WATCH"},
	Secrets:     []string{"POSTGRES_PASSWORD", "SONARR_API_KEY"},
}

func newTestService(store *mocks.MockConfigStore) *Service {
	return NewService(store, testKeys, logging.Discard())
}

func TestService_EnsureConfig_CreatesAndGeneratesSecrets(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Ensure", mock.Anything).Return(true, nil)
	store.On("Path").Return("/srv/stack/.env")
	store.On("GenerateSecrets", mock.Anything, false).Return([]string{"POSTGRES_PASSWORD"}, nil)

	created, err := newTestService(store).EnsureConfig(context.Background())

	require.NoError(t, err)
	assert.True(t, created)
	store.AssertExpectations(t)
}

func TestService_EnsureConfig_ExistingLeavesSecrets(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Ensure", mock.Anything).Return(false, nil)

	created, err := newTestService(store).EnsureConfig(context.Background())

	require.NoError(t, err)
	assert.False(t, created)
	store.AssertNotCalled(t, "GenerateSecrets", mock.Anything, mock.Anything)
}

func TestService_EnsureConfig_Error(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Ensure", mock.Anything).Return(false, errors.New("read-only filesystem"))

	_, err := newTestService(store).EnsureConfig(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure configuration")
}

func TestService_RegenerateSecrets(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Ensure", mock.Anything).Return(false, nil)
	store.On("GenerateSecrets", mock.Anything, true).Return([]string{"POSTGRES_PASSWORD", "SONARR_API_KEY"}, nil)

	keys, err := newTestService(store).RegenerateSecrets(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, []string{"POSTGRES_PASSWORD", "SONARR_API_KEY"}, keys)
}

func TestService_ValuesAreCachedUntilSecretsChange(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Load", mock.Anything).Return(map[string]string{"TZ": "Europe/Paris"}, nil).Twice()
	store.On("Ensure", mock.Anything).Return(false, nil)
	store.On("GenerateSecrets", mock.Anything, false).Return([]string{}, nil)

	svc := newTestService(store)
	ctx := context.Background()

	first, err := svc.Values(ctx)
	require.NoError(t, err)
	first["TZ"] = "mutated"

	second, err := svc.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", second["TZ"])
	store.AssertNumberOfCalls(t, "Load", 1)

	_, err = svc.RegenerateSecrets(ctx, false)
	require.NoError(t, err)
	_, err = svc.Values(ctx)
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "Load", 2)
}

func TestService_MaskedValues(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Load", mock.Anything).Return(map[string]string{
		"POSTGRES_PASSWORD": "0123456789abcdef",
		"SONARR_API_KEY":    "",
		"TZ":                "Etc/UTC",
	}, nil)

	masked, err := newTestService(store).MaskedValues(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "01****ef", masked["POSTGRES_PASSWORD"])
	assert.Equal(t, "", masked["SONARR_API_KEY"])
	assert.Equal(t, "Etc/UTC", masked["TZ"])
}

func TestService_Directories(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Load", mock.Anything).Return(map[string]string{
		"MEDIA_ROOT":     "/srv/media",
		"TV_PATH":        "/srv/media/tv",
		"DOWNLOADS_ROOT": "/srv/media",
		"TORRENTS_WATCH": "  ",
		"TZ":             "Etc/UTC",
	}, nil)

	dirs, err := newTestService(store).Directories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/media", "/srv/media/tv"}, dirs)
}

func TestService_Directories_LoadError(t *testing.T) {
	store := new(mocks.MockConfigStore)
	store.On("Load", mock.Anything).Return(nil, domain.ErrConfigNotFound)

	_, err := newTestService(store).Directories(context.Background())

	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
