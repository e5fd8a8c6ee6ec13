// Package config loads herodex settings from a YAML file, a .env file and
// HERODEX_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/herodex/internal/logging"
	"github.com/rshade/herodex/internal/marvel"
)

// Defaults for a fresh configuration.
const (
	DefaultServeAddr    = "127.0.0.1:8080"
	DefaultPinThreshold = 12
	DefaultRandomMinID  = 1011000
	DefaultRandomMaxID  = 1011399
	DefaultLogLevel     = "info"
	DefaultLogFormat    = logging.FormatJSON

	configDirName  = ".herodex"
	configFileName = "config.yaml"
	logFileName    = "herodex.log"
)

// Validation errors.
var (
	ErrMissingAPIKey   = errors.New("API key is not configured (set api.key or HERODEX_API_KEY)")
	ErrInvalidBaseURL  = errors.New("api.base_url must be an absolute http(s) URL")
	ErrNegativeTimeout = errors.New("api.timeout must be >= 0")
	ErrInvalidRange    = errors.New("ui.random_min_id must be <= ui.random_max_id")
	ErrInvalidPin      = errors.New("ui.pin_threshold must be >= 0 (0 selects the default)")
)

// Config is the complete herodex configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Serve   ServeConfig   `yaml:"serve"`
	UI      UIConfig      `yaml:"ui"`

	path string
}

// APIConfig points the data service at the catalog API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"HERODEX_API_BASE"`
	Key     string        `yaml:"key"      env:"HERODEX_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"HERODEX_HTTP_TIMEOUT"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"HERODEX_LOG_LEVEL"`
	Format string `yaml:"format" env:"HERODEX_LOG_FORMAT"`
	File   string `yaml:"file"   env:"HERODEX_LOG_FILE"`
}

// ServeConfig configures the JSON proxy.
type ServeConfig struct {
	Addr string `yaml:"addr" env:"HERODEX_SERVE_ADDR"`
}

// UIConfig tunes the interactive views.
type UIConfig struct {
	PinThreshold int `yaml:"pin_threshold" env:"HERODEX_PIN_THRESHOLD"`
	RandomMinID  int `yaml:"random_min_id" env:"HERODEX_RANDOM_MIN_ID"`
	RandomMaxID  int `yaml:"random_max_id" env:"HERODEX_RANDOM_MAX_ID"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		API: APIConfig{BaseURL: marvel.DefaultBaseURL},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(Dir(), logFileName),
		},
		Serve: ServeConfig{Addr: DefaultServeAddr},
		UI: UIConfig{
			PinThreshold: DefaultPinThreshold,
			RandomMinID:  DefaultRandomMinID,
			RandomMaxID:  DefaultRandomMaxID,
		},
		path: DefaultPath(),
	}
}

// ConfigPath returns the file this configuration is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.path
}

// SetConfigPath changes the file used by Save.
func (c *Config) SetConfigPath(path string) {
	c.path = path
}

// Dir returns the herodex configuration directory (~/.herodex).
// It falls back to the working directory when no home directory is known.
func Dir() string {
	if dir := os.Getenv("HERODEX_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (a missing file is not an error), then .env, then environment variables.
// An empty path selects DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := New()
	cfg.path = path
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to its ConfigPath as YAML, creating parent
// directories.
func (c *Config) Save() error {
	path := c.path
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings needed to talk to the API.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return ErrNegativeTimeout
	}
	if c.UI.RandomMinID > c.UI.RandomMaxID {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, c.UI.RandomMinID, c.UI.RandomMaxID)
	}
	if c.UI.PinThreshold < 0 {
		return ErrInvalidPin
	}
	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.API.Key != "" {
		out.API.Key = "********"
	}
	return out
}
