// Package config handles the XDG configuration directory, config.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "taskman"

	// ConfigFile is the optional YAML settings file inside the config directory.
	ConfigFile = "config.yaml"

	// LogFile receives diagnostics when --debug is not set.
	LogFile = "taskman.log"
)

// Defaults used when neither config.yaml nor the environment set a value.
const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultStorageType = "memory"
	DefaultStatus      = "pending"
	DefaultTimeout     = 5 * time.Second
	DefaultDownloadDir = "."
)

// Environment overrides, highest precedence.
const (
	envBaseURL     = "TASKMAN_BASE_URL"
	envStorageType = "TASKMAN_STORAGE_TYPE"
	envTimeout     = "TASKMAN_TIMEOUT"
	envDownloadDir = "TASKMAN_DOWNLOAD_DIR"
	envMetricsFile = "TASKMAN_METRICS_FILE"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `yaml:"-"`

	// Debug enables debug logging to stderr.
	Debug bool `yaml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `yaml:"-"`

	// BaseURL is the fixed address of the task API.
	BaseURL string `yaml:"base_url"`

	// StorageType is used when a command does not name a storage partition.
	StorageType string `yaml:"storage_type"`

	// DefaultStatus is sent with every create request.
	DefaultStatus string `yaml:"default_status"`

	// Timeout bounds every API call.
	Timeout time.Duration `yaml:"timeout"`

	// DownloadDir receives exported files.
	DownloadDir string `yaml:"download_dir"`

	// MetricsFile, if set, receives Prometheus text metrics after each command.
	MetricsFile string `yaml:"metrics_file"`
}

// New creates a new Config with defaults and the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskman or $HOME/.config/taskman.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		BaseURL:       DefaultBaseURL,
		StorageType:   DefaultStorageType,
		DefaultStatus: DefaultStatus,
		Timeout:       DefaultTimeout,
		DownloadDir:   DefaultDownloadDir,
	}, nil
}

// Load builds a Config from defaults, then config.yaml (if present), then the environment.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.FilePath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) overrideFromEnv() error {
	if v := os.Getenv(envBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(envStorageType); v != "" {
		c.StorageType = v
	}
	if v := os.Getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(envDownloadDir); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv(envMetricsFile); v != "" {
		c.MetricsFile = v
	}
	return nil
}

// Validate checks settings that would make every request fail.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path to the diagnostics log.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
