package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/sirupsen/logrus"
)

// Loader resolves and opens plugin code units.
type Loader struct {
	log *logrus.Logger
}

// NewLoader creates a new module loader.
func NewLoader(log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{log: log}
}

// Load produces a Module handle for the plugin rooted at pluginDir. A
// builtin module registered under the plugin name takes precedence; only
// when none exists is the entry file resolved from the manifest and
// opened as a shared object. A missing entry file yields ErrEntryNotFound;
// any failure opening or initializing the unit yields a LoadError carrying
// the original failure.
func (l *Loader) Load(pluginDir, name string, manifest Manifest) (Module, error) {
	if symbols, ok := lookupBuiltin(name); ok {
		l.log.Debugf("Plugin %s resolved from builtin registry", name)
		return &builtinModule{name: name, symbols: symbols}, nil
	}

	entry := filepath.Join(pluginDir, manifest.MainFile(name))
	if _, err := os.Stat(entry); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
		}
		return nil, &LoadError{Plugin: name, Cause: err}
	}

	// plugin.Open runs the shared object's initializers; any fault there
	// surfaces here as an error rather than propagating to the caller.
	p, err := plugin.Open(entry)
	if err != nil {
		return nil, &LoadError{Plugin: name, Cause: err}
	}

	return &sharedModule{name: name, plugin: p}, nil
}

// sharedModule wraps a shared object opened through the runtime plugin
// facility.
type sharedModule struct {
	name   string
	plugin *plugin.Plugin
}

// Lookup probes the literal symbol name first. Shared objects built by
// the Go toolchain only expose exported package-level symbols, so a
// snake_case convention name additionally resolves through its exported
// CamelCase form.
func (m *sharedModule) Lookup(symbol string) (any, error) {
	if sym, err := m.plugin.Lookup(symbol); err == nil {
		return sym, nil
	}

	exported := exportedSymbolName(symbol)
	sym, err := m.plugin.Lookup(exported)
	if err != nil {
		return nil, fmt.Errorf("symbol %s (or %s) not found in %s", symbol, exported, m.name)
	}
	return sym, nil
}

// exportedSymbolName converts a snake_case symbol name to its exported
// CamelCase form: "register_ill_routes" becomes "RegisterIllRoutes".
func exportedSymbolName(symbol string) string {
	var b strings.Builder
	for _, part := range strings.Split(symbol, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
