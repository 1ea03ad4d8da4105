package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ManifestFileName is the declaration file every plugin directory
	// must contain.
	ManifestFileName = "plugin.cfg"

	// Recognized manifest keys. All are optional.
	KeyMainFile    = "plugin_main_file"
	KeyDescription = "plugin_description"
	KeyVersion     = "plugin_version"

	// entryExtension is appended to the lower-cased directory name when a
	// manifest does not declare plugin_main_file.
	entryExtension = ".so"
)

// Manifest is a plugin's declaration, a flat mapping of keys to values
// parsed from its plugin.cfg. Unrecognized keys are preserved but unused.
type Manifest map[string]string

// ReadManifest parses a plugin.cfg file. The format is line-oriented
// "key = value" text: blank lines and lines starting with '#' are
// ignored, lines without '=' are skipped, keys and values are trimmed,
// and the last occurrence of a duplicate key wins. Malformed lines never
// fail the parse; only a missing or unreadable file is an error.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestAbsent, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	manifest := make(Manifest)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		manifest[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return manifest, nil
}

// ReadManifestFromDir reads a plugin's manifest from its directory.
func ReadManifestFromDir(dir string) (Manifest, error) {
	return ReadManifest(filepath.Join(dir, ManifestFileName))
}

// MainFile returns the entry file name declared by plugin_main_file, or
// the default derived from the plugin name when absent.
func (m Manifest) MainFile(pluginName string) string {
	if file, ok := m[KeyMainFile]; ok && file != "" {
		return file
	}
	return strings.ToLower(pluginName) + entryExtension
}

// Description returns the display description, empty when undeclared.
func (m Manifest) Description() string {
	return m[KeyDescription]
}

// Version returns the display version string, empty when undeclared.
func (m Manifest) Version() string {
	return m[KeyVersion]
}
