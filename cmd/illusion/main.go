package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/illussion-cdn/illusion/pkg/api"
	"github.com/illussion-cdn/illusion/pkg/config"
	"github.com/illussion-cdn/illusion/pkg/httputil"
	"github.com/illussion-cdn/illusion/pkg/observability"
	"github.com/illussion-cdn/illusion/pkg/plugins"
)

func main() {
	configPath := flag.String("config", "illusion.yaml", "Path to optional YAML config file")
	port := flag.String("port", "", "Override the listen port")
	pluginDir := flag.String("plugin-dir", "", "Override the plugin root directory")
	flag.Parse()

	log := logrus.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *pluginDir != "" {
		cfg.Plugins.Dir = *pluginDir
	}
	log.SetLevel(cfg.Observability.LogrusLevel())

	log.Info("Starting ILLUSION CDN Server...")

	manager := plugins.NewManager(plugins.ManagerConfig{
		PluginDir: cfg.Plugins.Dir,
		Priority:  cfg.Plugins.Priority,
		CatchAll:  cfg.Plugins.CatchAll,
	}, log)
	server := api.NewServer(manager)

	// Plugins load once, before the server accepts traffic. The timeout
	// bounds a pathological plugin that blocks in its own initialization.
	log.Info("Loading plugins...")
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Plugins.LoadTimeout)
	manager.LoadAll(loadCtx, server.Router())
	cancelLoad()

	log.Infof("Loaded %d plugins", manager.Count())
	for _, name := range manager.ListPlugins() {
		version := manager.GetPluginInfo(name).Version()
		if version == "" {
			version = "unknown"
		}
		log.Infof("  - %s v%s", name, version)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	metrics.SetPluginCounts(manager.Count(), manager.FailureCount())

	var handler http.Handler = server
	handler = httputil.CORSMiddleware(cfg.Server.AllowedOrigins)(handler)
	if cfg.Observability.MetricsEnabled {
		handler = httputil.MetricsMiddleware(metrics)(handler)
	}
	handler = httputil.LoggingMiddleware(log)(handler)
	handler = httputil.RecoveryMiddleware(log)(handler)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	health := observability.NewHealthChecker(manager)
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: health.Handler(registry),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Serving on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Infof("Health and metrics on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		_ = healthServer.Shutdown(shutdownCtx)
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Info("Server stopped")
}
