// Package filesystem implements host directory provisioning.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bnema/mediastack/internal/logging"
)

// DirMaker implements out.DirectoryMaker.
type DirMaker struct {
	fs   afero.Fs
	base string
}

// NewDirMaker creates a directory maker. Relative paths are resolved against base.
func NewDirMaker(fs afero.Fs, base string) *DirMaker {
	return &DirMaker{fs: fs, base: base}
}

// EnsureDir creates path and its parents when missing.
func (d *DirMaker) EnsureDir(ctx context.Context, path string) error {
	path = d.resolve(path)
	ctx = logging.CtxWithFields(ctx,
		logging.FieldLayer, "adapter",
		logging.FieldAdapter, "filesystem",
		logging.FieldAction, "EnsureDir",
		"path", path,
	)
	log := logging.FromCtx(ctx)

	info, err := d.fs.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		log.Debug("directory already present")
		return nil
	}
	if !os.IsNotExist(err) {
		return logging.WrapErr(log, err, "failed to stat directory")
	}

	if err := d.fs.MkdirAll(path, 0o755); err != nil {
		return logging.WrapErr(log, err, "failed to create directory")
	}

	log.Debug("directory created")
	return nil
}

func (d *DirMaker) resolve(path string) string {
	path = expandTilde(path)
	if !filepath.IsAbs(path) && d.base != "" {
		path = filepath.Join(d.base, path)
	}
	return filepath.Clean(path)
}

// expandTilde replaces a leading "~/" with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path[2:])
	}
	return path
}
