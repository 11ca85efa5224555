package compose

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/bnema/mediastack/internal/domain"
)

// Invocation forms, in detection order.
var (
	DockerPlugin  = []string{"docker", "compose"}
	DockerLegacy  = []string{"docker-compose"}
	PodmanCompose = []string{"podman-compose"}
)

// MinimumPluginVersion is the oldest docker compose plugin release supported.
const MinimumPluginVersion = "2.0.0"

// Detect resolves the compose invocation form.
// configured is a form from the tool settings, or "auto".
func Detect(ctx context.Context, runner Runner, configured string) ([]string, error) {
	if configured != "" && configured != "auto" {
		form := strings.Fields(configured)
		if _, err := runner.LookPath(form[0]); err != nil {
			return nil, fmt.Errorf("%w: %s is not installed", domain.ErrComposeUnavailable, form[0])
		}
		return form, nil
	}

	if _, err := runner.LookPath("docker"); err == nil {
		if _, _, err := runner.Run(ctx, "", "docker", "compose", "version"); err == nil {
			return DockerPlugin, nil
		}
	}
	if _, err := runner.LookPath("docker-compose"); err == nil {
		return DockerLegacy, nil
	}
	if _, err := runner.LookPath("podman-compose"); err == nil {
		return PodmanCompose, nil
	}

	return nil, domain.ErrComposeUnavailable
}

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?([-+][0-9A-Za-z.\-+]*)?`)

// ParseVersion extracts the first version number found in compose output.
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(match)
}

// CheckVersion rejects docker compose plugin releases older than MinimumPluginVersion.
// Other forms carry their own numbering and are accepted as is.
func CheckVersion(form []string, version string) error {
	if strings.Join(form, " ") != strings.Join(DockerPlugin, " ") {
		return nil
	}

	v, err := ParseVersion(version)
	if err != nil {
		return err
	}

	// Prerelease suffixes such as "-desktop.1" compare by core version.
	core, err := v.SetPrerelease("")
	if err != nil {
		return err
	}
	if core.LessThan(semver.MustParse(MinimumPluginVersion)) {
		return fmt.Errorf("%w: %s < %s", domain.ErrComposeTooOld, v, MinimumPluginVersion)
	}
	return nil
}
