package plugins

import (
	"os"
	"path/filepath"
	"sync"
)

// The search path is process-wide state: each loaded plugin's root is
// recorded so registration code can resolve sibling files (templates,
// data files) without knowing where the plugin was installed. Insertion
// is idempotent per root and survives for the process lifetime.
var (
	searchMu    sync.RWMutex
	searchPaths []string
	searchSeen  = make(map[string]struct{})
)

// addSearchPath records a plugin root ahead of previously added roots.
// Adding the same root twice has no effect.
func addSearchPath(root string) {
	searchMu.Lock()
	defer searchMu.Unlock()

	if _, seen := searchSeen[root]; seen {
		return
	}
	searchSeen[root] = struct{}{}
	searchPaths = append([]string{root}, searchPaths...)
}

// SearchPaths returns a copy of the registered plugin roots, most
// recently added first.
func SearchPaths() []string {
	searchMu.RLock()
	defer searchMu.RUnlock()

	paths := make([]string, len(searchPaths))
	copy(paths, searchPaths)
	return paths
}

// ResolveResource searches the registered plugin roots for a file by
// relative name and returns its full path.
func ResolveResource(name string) (string, bool) {
	for _, root := range SearchPaths() {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// resetSearchPaths clears search path state. Test support.
func resetSearchPaths() {
	searchMu.Lock()
	defer searchMu.Unlock()

	searchPaths = nil
	searchSeen = make(map[string]struct{})
}
