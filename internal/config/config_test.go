package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reusecalc/internal/config"
	"github.com/rshade/reusecalc/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_SectionReplacesDefaults(t *testing.T) {
	path := writeConfig(t, `
output:
  default_format: json
rollup:
  concurrency: 8
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "USD", cfg.Output.Currency, "omitted field falls back to default")
	assert.Equal(t, 8, cfg.Rollup.Concurrency)
	assert.Equal(t, "info", cfg.Logging.Level, "absent section untouched")
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "plugins:\n  foo: bar\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key: plugins")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "DEBUG")
	t.Setenv(config.EnvOutputFormat, "ndjson")
	t.Setenv(config.EnvReferenceFile, "/tmp/factors.yaml")
	t.Setenv(config.EnvConcurrency, "2")

	cfg, err := config.Load(writeConfig(t, "output:\n  default_format: json\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, "/tmp/factors.yaml", cfg.Reference.File)
	assert.Equal(t, 2, cfg.Rollup.Concurrency)
}

func TestLoad_BadConcurrencyEnv(t *testing.T) {
	t.Setenv(config.EnvConcurrency, "many")
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, config.ErrInvalidConcurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{
			name:    "bad output format",
			mutate:  func(c *config.Config) { c.Output.DefaultFormat = "xml" },
			wantErr: config.ErrInvalidOutputFormat,
		},
		{
			name:    "bad log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: config.ErrInvalidLogLevel,
		},
		{
			name:    "bad log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: config.ErrInvalidLogFormat,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *config.Config) { c.Rollup.Concurrency = 0 },
			wantErr: config.ErrInvalidConcurrency,
		},
		{
			name:    "bad constraint",
			mutate:  func(c *config.Config) { c.Reference.MinVersion = "not a version" },
			wantErr: config.ErrInvalidConstraint,
		},
		{
			name:   "good constraint",
			mutate: func(c *config.Config) { c.Reference.MinVersion = ">= 1.0.0" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Output.DefaultFormat = config.FormatJSON
	cfg.Reference.MinVersion = "^1.0.0"

	require.NoError(t, cfg.Save(path))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(config.EnvHome, "/custom/home")
	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/home", dir)

	path, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/home", "config.yaml"), path)
}

func TestNew_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("logging:\n  level: warn\n"), 0o600))

	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)

	lc.File = "/var/log/reusecalc.log"
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/var/log/reusecalc.log", got.File)
	assert.Equal(t, "debug", got.Level)
}

func TestEnsureLogDir(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.EnsureLogDir())

	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "reusecalc.log")
	require.NoError(t, cfg.EnsureLogDir())
	assert.DirExists(t, filepath.Dir(cfg.Logging.File))
}
