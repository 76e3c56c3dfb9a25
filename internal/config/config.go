// Package config loads reusecalc settings from ~/.reusecalc/config.yaml,
// applies REUSECALC_* environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/reusecalc/internal/units"
)

// Environment variables that override the config file.
const (
	EnvHome          = "REUSECALC_HOME"
	EnvLogLevel      = "REUSECALC_LOG_LEVEL"
	EnvLogFormat     = "REUSECALC_LOG_FORMAT"
	EnvOutputFormat  = "REUSECALC_OUTPUT_FORMAT"
	EnvReferenceFile = "REUSECALC_REFERENCE_FILE"
	EnvConcurrency   = "REUSECALC_ROLLUP_CONCURRENCY"
)

const (
	configFileName     = "config.yaml"
	defaultDirName     = ".reusecalc"
	defaultConcurrency = 4
	maxConcurrency     = 64
	configDirPerm      = 0o700
	configFilePerm     = 0o600
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Configuration errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be table, json or ndjson")
	ErrInvalidLogLevel     = errors.New("log level must be trace, debug, info, warn or error")
	ErrInvalidLogFormat    = errors.New("log format must be json, console or text")
	ErrInvalidConcurrency  = errors.New("rollup concurrency must be between 1 and 64")
	ErrInvalidConstraint   = errors.New("reference min_version is not a valid semver constraint")
)

//nolint:gochecknoglobals // Fixed lookup tables.
var (
	validFormats    = []string{FormatTable, FormatJSON, FormatNDJSON}
	validLevels     = []string{"trace", "debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "console", "text"}
)

// Config is the full reusecalc configuration.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Reference ReferenceConfig `yaml:"reference"`
	Rollup    RollupConfig    `yaml:"rollup"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	// Currency is a display label only; amounts are never converted.
	Currency string `yaml:"currency"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// ReferenceConfig points at an externally governed factor library.
type ReferenceConfig struct {
	// File replaces the embedded factor library when set.
	File string `yaml:"file,omitempty"`
	// MinVersion is a semver constraint the library must satisfy.
	MinVersion string `yaml:"min_version,omitempty"`
}

// RollupConfig controls organization roll-ups.
type RollupConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{DefaultFormat: FormatTable, Currency: units.DefaultCurrency},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Rollup:  RollupConfig{Concurrency: defaultConcurrency},
	}
}

// New loads the configuration from the default path, falling back to
// defaults when the file does not exist, then applies environment overrides.
func New() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks enumerated settings and ranges.
func (c *Config) Validate() error {
	if !slices.Contains(validFormats, c.Output.DefaultFormat) {
		return fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Rollup.Concurrency < 1 || c.Rollup.Concurrency > maxConcurrency {
		return fmt.Errorf("%w: got %d", ErrInvalidConcurrency, c.Rollup.Concurrency)
	}
	if c.Reference.MinVersion != "" {
		if err := validateConstraint(c.Reference.MinVersion); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvReferenceFile); v != "" {
		c.Reference.File = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConcurrency, EnvConcurrency, v)
		}
		c.Rollup.Concurrency = n
	}
	return nil
}

// GetConfigDir returns $REUSECALC_HOME, or ~/.reusecalc.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, defaultDirName), nil
}

// ConfigPath returns the path of the config file.
func ConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureLogDir creates the parent directory of the configured log file.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(logDir, configDirPerm); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
