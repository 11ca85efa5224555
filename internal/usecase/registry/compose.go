package registry

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/bnema/mediastack/internal/domain"
	"github.com/bnema/mediastack/internal/logging"
)

// composeFile is the subset of the compose model the registry compares against.
type composeFile struct {
	Services map[string]composeService  `yaml:"services"`
	Networks map[string]*composeNetwork `yaml:"networks"`
}

type composeService struct {
	Image       string              `yaml:"image"`
	HealthCheck *composeHealthCheck `yaml:"healthcheck,omitempty"`
}

type composeHealthCheck struct {
	Test    yaml.Node `yaml:"test,omitempty"`
	Disable bool      `yaml:"disable,omitempty"`
}

// enabled reports whether the block defines a check rather than turning it off.
// `test: ["NONE"]` disables the image's own check like `disable: true`.
func (h *composeHealthCheck) enabled() bool {
	if h == nil || h.Disable {
		return false
	}
	if h.Test.Kind == yaml.SequenceNode && len(h.Test.Content) > 0 && h.Test.Content[0].Value == "NONE" {
		return false
	}
	return true
}

type composeNetwork struct {
	Name     string `yaml:"name,omitempty"`
	Driver   string `yaml:"driver,omitempty"`
	External bool   `yaml:"external,omitempty"`
}

// CheckCompose compares the compose file at path with the catalog and
// returns one warning per drift. Drift never blocks an operation.
func (s *Service) CheckCompose(ctx context.Context, path string) ([]domain.Warning, error) {
	ctx = logging.CtxWithFields(ctx,
		logging.FieldLayer, "usecase",
		logging.FieldUseCase, "CheckCompose",
		"path", path,
	)
	log := logging.FromCtx(ctx)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: compose file %s", domain.ErrConfigNotFound, path)
		}
		return nil, logging.WrapErr(log, err, "failed to read compose file")
	}

	warnings, err := s.compareCompose(data)
	if err != nil {
		return nil, err
	}

	log.Debug("compose file checked", logging.FieldCount, len(warnings))
	return warnings, nil
}

func (s *Service) compareCompose(data []byte) ([]domain.Warning, error) {
	var file composeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: compose file: %v", domain.ErrInvalidConfig, err)
	}

	var warnings []domain.Warning
	warn := func(format string, args ...any) {
		warnings = append(warnings, domain.Warning{Step: "compose", Message: fmt.Sprintf(format, args...)})
	}

	for _, svc := range s.services {
		declared, ok := file.Services[svc.Name]
		switch {
		case !ok:
			warn("service %q is in the registry but not in the compose file", svc.Name)
		case declared.Image == "":
			warn("service %q has no image in the compose file", svc.Name)
		}
		if ok && svc.HealthChecked && !declared.HealthCheck.enabled() {
			warn("service %q expects a health check but the compose file defines none", svc.Name)
		}
	}

	extra := make([]string, 0)
	for name := range file.Services {
		if _, ok := s.index[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		warn("service %q is in the compose file but not in the registry", name)
	}

	for _, n := range s.networks {
		if !declaresExternal(file.Networks, n.Name) {
			warn("network %q is not declared as external in the compose file", n.Name)
		}
	}

	return warnings, nil
}

// declaresExternal reports whether the compose file attaches to the
// pre-created network name.
func declaresExternal(networks map[string]*composeNetwork, name string) bool {
	for key, n := range networks {
		if n == nil || !n.External {
			continue
		}
		if n.Name == name || (n.Name == "" && key == name) {
			return true
		}
	}
	return false
}
