package plugins

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestAbsent indicates a plugin directory has no plugin.cfg.
	// The plugin is skipped, never fatal.
	ErrManifestAbsent = errors.New("plugin manifest not found")

	// ErrEntryNotFound indicates the resolved entry file does not exist.
	ErrEntryNotFound = errors.New("plugin entry file not found")
)

// LoadError wraps a failure while opening or initializing a plugin's code
// unit. The original failure is preserved for the log line.
type LoadError struct {
	Plugin string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load plugin %s: %v", e.Plugin, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
