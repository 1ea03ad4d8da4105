package plugins

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// DefaultPluginDir is the conventional plugin root directory name.
const DefaultPluginDir = "plugin"

var (
	// DefaultPriority lists the plugins loaded first, in order, when
	// their directories exist.
	DefaultPriority = []string{"ILL", "TTS", "AntiPublic-Web"}

	// DefaultCatchAll is the plugin loaded after the priority list and
	// before everything else. It registers fallback routes and inspects
	// the routes already on the dispatch surface at its own registration
	// time, so it must see every more specific plugin's routes first.
	DefaultCatchAll = "GitHub"
)

// ManagerConfig controls plugin discovery and ordering.
type ManagerConfig struct {
	// PluginDir is the root directory whose immediate subdirectories are
	// plugins. Defaults to DefaultPluginDir.
	PluginDir string
	// Priority plugins are loaded first, in listed order, if and only if
	// their directory exists. Nil means DefaultPriority.
	Priority []string
	// CatchAll is loaded after the priority list and before the
	// remaining directories. Empty means DefaultCatchAll.
	CatchAll string
}

// Manager discovers plugins under a root directory, loads them in
// priority order, and wires their route registrations into a shared
// router. Loading is sequential and runs once during startup; afterwards
// the manager's registry is read-only and safe for concurrent reads.
type Manager struct {
	pluginDir string
	priority  []string
	catchAll  string
	loader    *Loader

	mu       sync.RWMutex
	records  map[string]*Record
	order    []string
	failures int

	log *logrus.Logger
}

// NewManager creates a plugin manager.
func NewManager(cfg ManagerConfig, log *logrus.Logger) *Manager {
	if cfg.PluginDir == "" {
		cfg.PluginDir = DefaultPluginDir
	}
	if cfg.Priority == nil {
		cfg.Priority = DefaultPriority
	}
	if cfg.CatchAll == "" {
		cfg.CatchAll = DefaultCatchAll
	}
	if log == nil {
		log = logrus.New()
	}

	return &Manager{
		pluginDir: cfg.PluginDir,
		priority:  cfg.Priority,
		catchAll:  cfg.CatchAll,
		loader:    NewLoader(log),
		records:   make(map[string]*Record),
		log:       log,
	}
}

// LoadAll discovers and loads every plugin under the configured root,
// registering routes into router. It is best effort: a plugin's failure
// at any step is logged and the next plugin is attempted; nothing
// propagates to the caller. A missing or empty plugin root loads zero
// plugins. The context bounds total load time against a plugin that
// blocks indefinitely in its own initialization.
func (m *Manager) LoadAll(ctx context.Context, router *mux.Router) {
	info, err := os.Stat(m.pluginDir)
	if err != nil || !info.IsDir() {
		m.log.Infof("Plugin directory %s not found, no plugins loaded", m.pluginDir)
		return
	}

	loaded := make(map[string]bool)

	// Priority plugins first, in listed order. A listed plugin with no
	// directory is never attempted.
	for _, name := range m.priority {
		if ctx.Err() != nil {
			m.log.Warnf("Plugin loading aborted: %v", ctx.Err())
			return
		}
		dir := filepath.Join(m.pluginDir, name)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			m.loadOne(name, dir, router)
			loaded[name] = true
		}
	}

	// The catch-all plugin next, strictly after everything that might
	// register more specific routes. Its registration code checks the
	// existing routes itself; the manager only guarantees the ordering.
	if m.catchAll != "" && !loaded[m.catchAll] {
		dir := filepath.Join(m.pluginDir, m.catchAll)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			m.loadOne(m.catchAll, dir, router)
			loaded[m.catchAll] = true
		}
	}

	// Remaining subdirectories in directory enumeration order.
	entries, err := os.ReadDir(m.pluginDir)
	if err != nil {
		m.log.Warnf("Failed to read plugin directory %s: %v", m.pluginDir, err)
		return
	}
	if len(entries) == 0 {
		m.log.Infof("Plugin directory %s is empty", m.pluginDir)
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			m.log.Warnf("Plugin loading aborted: %v", ctx.Err())
			return
		}
		if !entry.IsDir() || loaded[entry.Name()] {
			continue
		}
		m.loadOne(entry.Name(), filepath.Join(m.pluginDir, entry.Name()), router)
	}
}

// loadOne drives the full load sequence for a single plugin: manifest,
// module, route registration, record. Any failure is logged with the
// plugin name and counted; no record is inserted.
func (m *Manager) loadOne(name, dir string, router *mux.Router) {
	log := m.log.WithField("plugin", name)

	manifest, err := ReadManifestFromDir(dir)
	if err != nil {
		if errors.Is(err, ErrManifestAbsent) {
			log.Infof("Skipping plugin: %s not found", ManifestFileName)
		} else {
			log.Warnf("Failed to read manifest: %v", err)
		}
		m.recordFailure()
		return
	}

	// Record the plugin root before execution so the plugin's own
	// initialization can already resolve sibling resources.
	addSearchPath(dir)

	module, err := m.loader.Load(dir, name, manifest)
	if err != nil {
		log.Warnf("Failed to load plugin: %v", err)
		m.recordFailure()
		return
	}

	outcome, err := m.register(module, name, router)
	if err != nil {
		log.Warnf("Route registration failed: %v", err)
		m.recordFailure()
		return
	}
	if outcome == EntryPointMissing {
		log.Infof("Registration function %s not found, no routes registered", registrationSymbol(name))
	}

	m.mu.Lock()
	m.records[name] = &Record{Name: name, Manifest: manifest, Module: module, Path: dir}
	m.order = append(m.order, name)
	m.mu.Unlock()

	if version := manifest.Version(); version != "" {
		log.Infof("Plugin loaded and registered (version %s)", version)
	} else {
		log.Info("Plugin loaded and registered")
	}
}

// register invokes the plugin's registration entry point, containing any
// panic from the plugin's own code.
func (m *Manager) register(module Module, name string, router *mux.Router) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("registration panicked: %v", r)
		}
	}()
	return invokeRegistrar(module, name, router)
}

func (m *Manager) recordFailure() {
	m.mu.Lock()
	m.failures++
	m.mu.Unlock()
}

// ListPlugins returns the names of all loaded plugins in load order.
func (m *Manager) ListPlugins() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}

// GetPluginInfo returns a plugin's manifest, or an empty manifest when
// no plugin with that name was loaded.
func (m *Manager) GetPluginInfo(name string) Manifest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if record, exists := m.records[name]; exists {
		return record.Manifest
	}
	return Manifest{}
}

// GetRecord returns the full record for a loaded plugin.
func (m *Manager) GetRecord(name string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.records[name]
	return record, exists
}

// Count returns the number of loaded plugins.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// FailureCount returns the number of plugins that failed somewhere in
// the load sequence.
func (m *Manager) FailureCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.failures
}
