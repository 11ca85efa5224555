// Package envfile implements the stack configuration resource (.env file).
package envfile

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Store implements out.ConfigStore on top of an env file.
type Store struct {
	fs   afero.Fs
	path string
	// random fills b with random bytes; swapped in tests.
	random func(b []byte) (int, error)
}

// NewStore creates a store for the env file at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:     fs,
		path:   path,
		random: rand.Read,
	}
}

func adapterCtx(ctx context.Context, action string) context.Context {
	return logging.CtxWithFields(ctx,
		logging.FieldLayer, "adapter",
		logging.FieldAdapter, "envfile",
		logging.FieldAction, action,
	)
}

// Path returns the location of the env file.
func (s *Store) Path() string {
	return s.path
}

// Ensure writes the default template when the file does not exist.
func (s *Store) Ensure(ctx context.Context) (bool, error) {
	ctx = adapterCtx(ctx, "Ensure")
	log := logging.FromCtx(ctx).With("path", s.path)

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, logging.WrapErr(log, err, "failed to check env file")
	}
	if exists {
		return false, nil
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, logging.WrapErr(log, err, "failed to create env file directory")
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(defaultContent()), 0o600); err != nil {
		return false, logging.WrapErr(log, err, "failed to write env file")
	}

	log.Info("env file created with defaults")
	return true, nil
}

// Load parses the env file. ${VAR} references are expanded.
func (s *Store) Load(ctx context.Context) (map[string]string, error) {
	ctx = adapterCtx(ctx, "Load")
	log := logging.FromCtx(ctx).With("path", s.path)

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, s.path)
		}
		return nil, logging.WrapErr(log, err, "failed to read env file")
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, s.path, err)
	}
	return values, nil
}

// GenerateSecrets writes random values into credential keys that are empty or
// still hold the placeholder. force regenerates every credential.
// Other lines, comments included, are left untouched.
func (s *Store) GenerateSecrets(ctx context.Context, force bool) ([]string, error) {
	ctx = adapterCtx(ctx, "GenerateSecrets")
	log := logging.FromCtx(ctx).With("path", s.path, "force", force)

	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]string)
	var written []string
	for _, key := range secretKeys {
		value := strings.TrimSpace(current[key.name])
		if !force && value != "" && value != Placeholder {
			continue
		}

		secret, err := s.generate(key.kind)
		if err != nil {
			return nil, logging.WrapErr(log, err, "failed to generate secret")
		}
		updates[key.name] = secret
		written = append(written, key.name)
	}

	if len(updates) == 0 {
		log.Debug("all credentials already set")
		return written, nil
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to read env file")
	}

	content, err := applyUpdates(string(data), updates)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to render env file")
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(content), 0o600); err != nil {
		return nil, logging.WrapErr(log, err, "failed to write env file")
	}

	log.Info("credentials generated", logging.FieldCount, len(written))
	return written, nil
}

func (s *Store) generate(kind secretKind) (string, error) {
	size := 24
	if kind == kindAPIKey {
		size = 16
	}

	b := make([]byte, size)
	if _, err := s.random(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// applyUpdates rewrites the lines assigning updated keys and appends keys
// that were not present.
func applyUpdates(content string, updates map[string]string) (string, error) {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	done := make(map[string]bool, len(updates))

	for i, line := range lines {
		key := assignedKey(line)
		value, ok := updates[key]
		if !ok || done[key] {
			continue
		}
		rendered, err := godotenv.Marshal(map[string]string{key: value})
		if err != nil {
			return "", err
		}
		lines[i] = rendered
		done[key] = true
	}

	for _, key := range secretKeys {
		value, ok := updates[key.name]
		if !ok || done[key.name] {
			continue
		}
		rendered, err := godotenv.Marshal(map[string]string{key.name: value})
		if err != nil {
			return "", err
		}
		lines = append(lines, rendered)
	}

	return strings.Join(lines, "\n") + "\n", nil
}

// assignedKey returns the key assigned on line, or "" for comments and blanks.
func assignedKey(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "export ")
	key, _, found := strings.Cut(trimmed, "=")
	if !found {
		return ""
	}
	return strings.TrimSpace(key)
}
