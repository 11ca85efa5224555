// Package config implements the stack configuration use case.
package config

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/bnema/mediastack/internal/boundaries/out"
	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// Service implements the ConfigService interface.
type Service struct {
	store out.ConfigStore
	keys  domain.ConfigKeys
	log   *log.Logger

	mu     sync.RWMutex
	values map[string]string
}

// NewService creates a new config service.
func NewService(store out.ConfigStore, keys domain.ConfigKeys, log *log.Logger) *Service {
	return &Service{
		store: store,
		keys:  keys,
		log:   log,
	}
}

func (s *Service) ctx(ctx context.Context, usecase string) context.Context {
	return logging.WithLogger(ctx, s.log.With(
		logging.FieldLayer, "usecase",
		logging.FieldUseCase, usecase,
	))
}

// Path returns the resource location.
func (s *Service) Path() string {
	return s.store.Path()
}

// EnsureConfig creates the resource with defaults when missing.
// A freshly created resource gets its secrets generated immediately.
func (s *Service) EnsureConfig(ctx context.Context) (bool, error) {
	ctx = s.ctx(ctx, "EnsureConfig")
	log := logging.FromCtx(ctx)

	created, err := s.store.Ensure(ctx)
	if err != nil {
		return false, logging.WrapErr(log, err, "failed to ensure configuration")
	}
	if !created {
		return false, nil
	}

	log.Info("configuration created with defaults", "path", s.store.Path())
	generated, err := s.store.GenerateSecrets(ctx, false)
	if err != nil {
		return true, logging.WrapErr(log, err, "failed to generate secrets")
	}
	log.Info("secrets generated", logging.FieldCount, len(generated))

	s.invalidate()
	return true, nil
}

// RegenerateSecrets ensures the resource exists and fills its credential keys.
// Without force only empty or placeholder values are replaced.
func (s *Service) RegenerateSecrets(ctx context.Context, force bool) ([]string, error) {
	ctx = s.ctx(ctx, "RegenerateSecrets")
	log := logging.FromCtx(ctx)

	if _, err := s.store.Ensure(ctx); err != nil {
		return nil, logging.WrapErr(log, err, "failed to ensure configuration")
	}

	generated, err := s.store.GenerateSecrets(ctx, force)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to generate secrets")
	}

	s.invalidate()
	log.Info("secrets regenerated", logging.FieldCount, len(generated), "force", force)
	return generated, nil
}

// Values returns the resource content. The first successful read is cached.
func (s *Service) Values(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	cached := s.values
	s.mu.RUnlock()
	if cached != nil {
		return copyValues(cached), nil
	}

	ctx = s.ctx(ctx, "Values")
	log := logging.FromCtx(ctx)

	values, err := s.store.Load(ctx)
	if err != nil {
		return nil, logging.WrapErr(log, err, "failed to load configuration")
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()

	return copyValues(values), nil
}

// MaskedValues returns the resource content with credentials masked.
func (s *Service) MaskedValues(ctx context.Context) (map[string]string, error) {
	values, err := s.Values(ctx)
	if err != nil {
		return nil, err
	}

	for key, value := range values {
		if s.keys.IsSecret(key) {
			values[key] = domain.MaskSecret(value)
		}
	}
	return values, nil
}

// Directories returns the media and download paths, in key order and
// without duplicates. Unset keys are skipped.
func (s *Service) Directories(ctx context.Context) ([]string, error) {
	values, err := s.Values(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(s.keys.Directories))
	dirs := make([]string, 0, len(s.keys.Directories))
	for _, key := range s.keys.Directories {
		path := strings.TrimSpace(values[key])
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		dirs = append(dirs, path)
	}
	return dirs, nil
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.values = nil
	s.mu.Unlock()
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
