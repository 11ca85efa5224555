package filesystem

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirMaker_EnsureDirCreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	maker := NewDirMaker(fs, "/srv/mediastack")

	require.NoError(t, maker.EnsureDir(context.Background(), "/srv/media/movies"))

	exists, err := afero.DirExists(fs, "/srv/media/movies")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirMaker_EnsureDirIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	maker := NewDirMaker(fs, "/srv/mediastack")
	ctx := context.Background()

	require.NoError(t, maker.EnsureDir(ctx, "/srv/downloads/complete"))
	require.NoError(t, maker.EnsureDir(ctx, "/srv/downloads/complete"))
}

func TestDirMaker_RelativePathsUseBase(t *testing.T) {
	fs := afero.NewMemMapFs()
	maker := NewDirMaker(fs, "/srv/mediastack")

	require.NoError(t, maker.EnsureDir(context.Background(), "config/sonarr"))

	exists, err := afero.DirExists(fs, "/srv/mediastack/config/sonarr")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDirMaker_FileInTheWay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/media", []byte("x"), 0o644))
	maker := NewDirMaker(fs, "/")

	assert.Error(t, maker.EnsureDir(context.Background(), "/srv/media"))
}

func TestDirMaker_ReadOnlyFilesystem(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	maker := NewDirMaker(fs, "/")

	assert.Error(t, maker.EnsureDir(context.Background(), "/srv/media"))
}
