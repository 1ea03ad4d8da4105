package plugins

import (
	"fmt"
	"sync"
)

// Symbols is the symbol table a builtin plugin module exposes. Keys are
// symbol names; values are the declared functions or values. Symbol names
// are not restricted to exported Go identifiers, so the conventional
// snake_case registration names work as-is.
type Symbols map[string]any

var (
	// builtins is the package-level registry of compiled-in plugin
	// modules, keyed by plugin name.
	builtins = make(map[string]Symbols)
	// builtinMu protects concurrent access to builtins
	builtinMu sync.RWMutex
)

// RegisterBuiltin adds a compiled-in plugin module to the registry under
// a plugin name. The loader consults this registry before looking for a
// shared object on disk, so builtin plugins need only a directory with a
// plugin.cfg to be discovered.
func RegisterBuiltin(name string, symbols Symbols) error {
	if name == "" {
		return fmt.Errorf("cannot register builtin module with empty name")
	}
	if symbols == nil {
		return fmt.Errorf("cannot register nil symbol table for %s", name)
	}

	builtinMu.Lock()
	defer builtinMu.Unlock()

	if _, exists := builtins[name]; exists {
		return fmt.Errorf("builtin module already registered: %s", name)
	}

	builtins[name] = symbols
	return nil
}

// HasBuiltin checks if a builtin module is registered under a name.
func HasBuiltin(name string) bool {
	builtinMu.RLock()
	defer builtinMu.RUnlock()

	_, exists := builtins[name]
	return exists
}

// ClearBuiltins removes all builtin modules from the registry.
func ClearBuiltins() {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	builtins = make(map[string]Symbols)
}

func lookupBuiltin(name string) (Symbols, bool) {
	builtinMu.RLock()
	defer builtinMu.RUnlock()

	symbols, exists := builtins[name]
	return symbols, exists
}

// builtinModule adapts a Symbols table to the Module interface.
type builtinModule struct {
	name    string
	symbols Symbols
}

func (m *builtinModule) Lookup(symbol string) (any, error) {
	if sym, ok := m.symbols[symbol]; ok {
		return sym, nil
	}
	return nil, fmt.Errorf("symbol %s not found in builtin module %s", symbol, m.name)
}
