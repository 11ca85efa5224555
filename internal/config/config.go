// Package config loads the tool settings.
// The stack's own .env resource is handled by the envfile adapter, not here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/mediastack/internal/domain"
)

// Compose invocation forms accepted by compose.command.
const (
	ComposeAuto          = "auto"
	ComposeDockerPlugin  = "docker compose"
	ComposeDockerLegacy  = "docker-compose"
	ComposePodmanCompose = "podman-compose"
)

// Config is the tool configuration.
type Config struct {
	Project   ProjectConfig   `mapstructure:"project"`
	Compose   ComposeConfig   `mapstructure:"compose"`
	Docker    DockerConfig    `mapstructure:"docker"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Log       LogConfig       `mapstructure:"log"`
	UI        UIConfig        `mapstructure:"ui"`
}

type ProjectConfig struct {
	Name        string `mapstructure:"name"`
	Dir         string `mapstructure:"dir"`
	ComposeFile string `mapstructure:"compose_file"`
	EnvFile     string `mapstructure:"env_file"`
}

type ComposeConfig struct {
	Command string `mapstructure:"command"`
}

type DockerConfig struct {
	// Host overrides DOCKER_HOST when set.
	Host string `mapstructure:"host"`
}

type LifecycleConfig struct {
	StartSettle   time.Duration `mapstructure:"start_settle"`
	RestartSettle time.Duration `mapstructure:"restart_settle"`
}

type LogConfig struct {
	Level string        `mapstructure:"level"`
	File  LogFileConfig `mapstructure:"file"`
}

type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type UIConfig struct {
	Color bool `mapstructure:"color"`
}

// Load reads the configuration file (optional), environment and defaults.
// projectDir overrides project.dir when not empty.
func Load(configPath, projectDir string) (Config, error) {
	v := viper.New()
	if err := loadConfig(v, configPath, projectDir); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if projectDir != "" {
		cfg.Project.Dir = projectDir
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadConfig(v *viper.Viper, configPath, projectDir string) error {
	v.SetDefault("project.name", "mediastack")
	v.SetDefault("project.dir", ".")
	v.SetDefault("project.compose_file", "docker-compose.yml")
	v.SetDefault("project.env_file", ".env")
	v.SetDefault("compose.command", ComposeAuto)
	v.SetDefault("docker.host", "")
	v.SetDefault("lifecycle.start_settle", "10s")
	v.SetDefault("lifecycle.restart_settle", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size", 10)
	v.SetDefault("log.file.max_backups", 3)
	v.SetDefault("log.file.max_age", 28)
	v.SetDefault("ui.color", true)

	configureViper(v, configPath, projectDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("MEDIASTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

func configureViper(v *viper.Viper, configPath, projectDir string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.SetConfigName("mediastack")
	v.SetConfigType("yaml")

	if projectDir != "" {
		v.AddConfigPath(projectDir)
	}
	v.AddConfigPath(".")
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(userConfigDir, "mediastack"))
	}
	v.AddConfigPath("/etc/mediastack")
}

// normalize resolves project-relative paths.
func (c *Config) normalize() error {
	dir, err := filepath.Abs(c.Project.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project dir %q: %w", c.Project.Dir, err)
	}
	c.Project.Dir = dir

	if !filepath.IsAbs(c.Project.ComposeFile) {
		c.Project.ComposeFile = filepath.Join(dir, c.Project.ComposeFile)
	}
	if !filepath.IsAbs(c.Project.EnvFile) {
		c.Project.EnvFile = filepath.Join(dir, c.Project.EnvFile)
	}
	c.Compose.Command = strings.Join(strings.Fields(c.Compose.Command), " ")
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	return nil
}

// projectNamePattern matches the names compose accepts for a project.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks the configuration for values the tool cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Project.Name) == "" {
		return fmt.Errorf("%w: project.name is required", domain.ErrInvalidConfig)
	}
	if !projectNamePattern.MatchString(c.Project.Name) {
		return fmt.Errorf("%w: project.name %q must be lowercase letters, digits, dashes or underscores", domain.ErrInvalidConfig, c.Project.Name)
	}

	switch c.Compose.Command {
	case ComposeAuto, ComposeDockerPlugin, ComposeDockerLegacy, ComposePodmanCompose:
	default:
		return fmt.Errorf("%w: compose.command must be one of: %s", domain.ErrInvalidConfig,
			strings.Join([]string{ComposeAuto, ComposeDockerPlugin, ComposeDockerLegacy, ComposePodmanCompose}, ", "))
	}

	if c.Lifecycle.StartSettle < 0 || c.Lifecycle.RestartSettle < 0 {
		return fmt.Errorf("%w: settle delays cannot be negative", domain.ErrInvalidConfig)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidConfig, c.Log.Level)
	}

	return nil
}
