package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/illussion-cdn/illusion/pkg/plugins"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Plugin engine configuration
	Plugins PluginsConfig `yaml:"plugins"`

	// Observability configuration
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server configuration. Timeouts are settable
// through environment variables only.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Health/metrics server (separate port for probes)
	HealthPort string `yaml:"health_port"`

	ReadTimeout     time.Duration `yaml:"-"`
	WriteTimeout    time.Duration `yaml:"-"`
	IdleTimeout     time.Duration `yaml:"-"`
	ShutdownTimeout time.Duration `yaml:"-"`
}

// PluginsConfig holds plugin discovery settings
type PluginsConfig struct {
	// Dir is the plugin root directory
	Dir string `yaml:"dir"`
	// Priority plugins load first, in listed order
	Priority []string `yaml:"priority"`
	// CatchAll loads after the priority list and before the rest
	CatchAll string `yaml:"catch_all"`

	// LoadTimeout bounds the whole startup load phase
	LoadTimeout time.Duration `yaml:"-"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8000",
			HealthPort:      "9090",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Plugins: PluginsConfig{
			Dir:         plugins.DefaultPluginDir,
			Priority:    plugins.DefaultPriority,
			CatchAll:    plugins.DefaultCatchAll,
			LoadTimeout: 60 * time.Second,
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			MetricsEnabled: true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that order of precedence. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies ILLUSION_* environment variables on top of
// whatever the file supplied
func applyEnvOverrides(cfg *Config) {
	cfg.Server.Host = getEnv("ILLUSION_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnv("ILLUSION_PORT", cfg.Server.Port)
	cfg.Server.HealthPort = getEnv("ILLUSION_HEALTH_PORT", cfg.Server.HealthPort)
	cfg.Server.AllowedOrigins = getEnvStringSlice("ILLUSION_ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)
	cfg.Server.ReadTimeout = getEnvDuration("ILLUSION_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = getEnvDuration("ILLUSION_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = getEnvDuration("ILLUSION_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = getEnvDuration("ILLUSION_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Plugins.Dir = getEnv("ILLUSION_PLUGIN_DIR", cfg.Plugins.Dir)
	cfg.Plugins.Priority = getEnvStringSlice("ILLUSION_PLUGIN_PRIORITY", cfg.Plugins.Priority)
	cfg.Plugins.CatchAll = getEnv("ILLUSION_PLUGIN_CATCH_ALL", cfg.Plugins.CatchAll)
	cfg.Plugins.LoadTimeout = getEnvDuration("ILLUSION_PLUGIN_LOAD_TIMEOUT", cfg.Plugins.LoadTimeout)

	cfg.Observability.LogLevel = getEnv("ILLUSION_LOG_LEVEL", cfg.Observability.LogLevel)
	cfg.Observability.MetricsEnabled = getEnvBool("ILLUSION_METRICS_ENABLED", cfg.Observability.MetricsEnabled)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Plugins.Dir == "" {
		return fmt.Errorf("plugin directory is required")
	}
	if c.Plugins.LoadTimeout <= 0 {
		return fmt.Errorf("plugin load timeout must be positive")
	}
	if _, err := logrus.ParseLevel(c.Observability.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Observability.LogLevel)
	}
	return nil
}

// LogrusLevel returns the configured log level. Validate guarantees it
// parses.
func (c *ObservabilityConfig) LogrusLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvStringSlice returns a comma-separated environment variable as a
// slice, trimmed, or a default
func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if out == nil {
		return defaultValue
	}
	return out
}
