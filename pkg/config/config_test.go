package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "plugin", cfg.Plugins.Dir)
	assert.Equal(t, []string{"ILL", "TTS", "AntiPublic-Web"}, cfg.Plugins.Priority)
	assert.Equal(t, "GitHub", cfg.Plugins.CatchAll)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults().Server.Port, cfg.Server.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "illusion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "8080"
  allowed_origins: ["https://example.com"]
plugins:
  dir: extensions
  priority: [Alpha, Beta]
  catch_all: Fallback
observability:
  log_level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "extensions", cfg.Plugins.Dir)
	assert.Equal(t, []string{"Alpha", "Beta"}, cfg.Plugins.Priority)
	assert.Equal(t, "Fallback", cfg.Plugins.CatchAll)
	assert.Equal(t, logrus.DebugLevel, cfg.Observability.LogrusLevel())
	// Unset file keys keep their defaults.
	assert.Equal(t, "9090", cfg.Server.HealthPort)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "illusion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"8080\"\n"), 0644))

	t.Setenv("ILLUSION_PORT", "9000")
	t.Setenv("ILLUSION_PLUGIN_PRIORITY", "One, Two ,Three")
	t.Setenv("ILLUSION_PLUGIN_LOAD_TIMEOUT", "5s")
	t.Setenv("ILLUSION_METRICS_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"One", "Two", "Three"}, cfg.Plugins.Priority)
	assert.Equal(t, 5*time.Second, cfg.Plugins.LoadTimeout)
	assert.False(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "illusion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }, "server port is required"},
		{"missing health port", func(c *Config) { c.Server.HealthPort = "" }, "health port is required"},
		{"port collision", func(c *Config) { c.Server.HealthPort = c.Server.Port }, "must be different"},
		{"missing plugin dir", func(c *Config) { c.Plugins.Dir = "" }, "plugin directory is required"},
		{"bad load timeout", func(c *Config) { c.Plugins.LoadTimeout = 0 }, "must be positive"},
		{"bad log level", func(c *Config) { c.Observability.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
