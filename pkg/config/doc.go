// Package config provides application configuration from defaults, an
// optional YAML file, and environment variable overrides.
//
// # Configuration Structure
//
// Server settings:
//
//	ILLUSION_HOST="0.0.0.0"
//	ILLUSION_PORT="8000"
//	ILLUSION_HEALTH_PORT="9090"
//	ILLUSION_ALLOWED_ORIGINS="*"
//	ILLUSION_READ_TIMEOUT="15s"
//	ILLUSION_WRITE_TIMEOUT="15s"
//	ILLUSION_SHUTDOWN_TIMEOUT="30s"
//
// Plugin engine settings:
//
//	ILLUSION_PLUGIN_DIR="plugin"
//	ILLUSION_PLUGIN_PRIORITY="ILL,TTS,AntiPublic-Web"
//	ILLUSION_PLUGIN_CATCH_ALL="GitHub"
//	ILLUSION_PLUGIN_LOAD_TIMEOUT="60s"
//
// Observability settings:
//
//	ILLUSION_LOG_LEVEL="info"  # debug, info, warn, error
//	ILLUSION_METRICS_ENABLED="true"
//
// The YAML file mirrors the same structure under server, plugins, and
// observability keys; environment variables win over file values.
// Timeouts are environment-only.
//
// # Usage Example
//
//	cfg, err := config.Load("illusion.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Serving on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
