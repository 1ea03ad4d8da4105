package plugins

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makePluginDir creates a plugin directory with a plugin.cfg under root.
func makePluginDir(t *testing.T, root, name, cfg string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(cfg), 0644))
	return dir
}

// registerOrderedBuiltin registers a builtin plugin whose registration
// entry point appends the plugin name to order when invoked.
func registerOrderedBuiltin(t *testing.T, name string, order *[]string) {
	t.Helper()
	err := RegisterBuiltin(name, Symbols{
		registrationSymbol(name): func(*mux.Router) {
			*order = append(*order, name)
		},
	})
	require.NoError(t, err)
}

func newTestManager(cfg ManagerConfig) *Manager {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(cfg, log)
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(ManagerConfig{}, nil)

	assert.Equal(t, DefaultPluginDir, m.pluginDir)
	assert.Equal(t, DefaultPriority, m.priority)
	assert.Equal(t, DefaultCatchAll, m.catchAll)
	assert.NotNil(t, m.log)
}

func TestLoadAll_Ordering(t *testing.T) {
	t.Cleanup(ClearBuiltins)
	resetSearchPaths()

	root := t.TempDir()
	// C is in the priority list but has no directory; it is never attempted.
	for _, name := range []string{"B", "F", "X", "A"} {
		makePluginDir(t, root, name, "")
	}

	var order []string
	for _, name := range []string{"A", "B", "F", "X"} {
		registerOrderedBuiltin(t, name, &order)
	}

	m := newTestManager(ManagerConfig{
		PluginDir: root,
		Priority:  []string{"A", "B", "C"},
		CatchAll:  "F",
	})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Equal(t, []string{"A", "B", "F", "X"}, order)
	assert.Equal(t, []string{"A", "B", "F", "X"}, m.ListPlugins())
	assert.Equal(t, 4, m.Count())
	assert.Empty(t, m.GetPluginInfo("C"))
}

func TestLoadAll_MissingRoot(t *testing.T) {
	m := newTestManager(ManagerConfig{PluginDir: filepath.Join(t.TempDir(), "absent")})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Zero(t, m.Count())
	assert.Empty(t, m.ListPlugins())
}

func TestLoadAll_EmptyRoot(t *testing.T) {
	m := newTestManager(ManagerConfig{PluginDir: t.TempDir()})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Zero(t, m.Count())
}

func TestLoadAll_SkipsPluginWithoutManifest(t *testing.T) {
	t.Cleanup(ClearBuiltins)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "NoManifest"), 0755))
	makePluginDir(t, root, "Good", "")

	var order []string
	registerOrderedBuiltin(t, "Good", &order)

	m := newTestManager(ManagerConfig{PluginDir: root, Priority: []string{}, CatchAll: "none"})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Equal(t, []string{"Good"}, m.ListPlugins())
	assert.Empty(t, m.GetPluginInfo("NoManifest"))
	assert.Equal(t, 1, m.FailureCount())
}

func TestLoadAll_RegistrationPanicContained(t *testing.T) {
	t.Cleanup(ClearBuiltins)

	root := t.TempDir()
	makePluginDir(t, root, "Faulty", "")
	makePluginDir(t, root, "Stable", "")

	require.NoError(t, RegisterBuiltin("Faulty", Symbols{
		registrationSymbol("Faulty"): func(*mux.Router) {
			panic("broken plugin")
		},
	}))
	var order []string
	registerOrderedBuiltin(t, "Stable", &order)

	m := newTestManager(ManagerConfig{
		PluginDir: root,
		Priority:  []string{"Faulty", "Stable"},
		CatchAll:  "none",
	})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Equal(t, []string{"Stable"}, m.ListPlugins())
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, m.FailureCount())
	assert.Empty(t, m.GetPluginInfo("Faulty"))
}

func TestLoadAll_EntryPointMissingStillRecorded(t *testing.T) {
	t.Cleanup(ClearBuiltins)

	root := t.TempDir()
	makePluginDir(t, root, "Silent", "plugin_version = 0.1")
	require.NoError(t, RegisterBuiltin("Silent", Symbols{}))

	router := mux.NewRouter()
	before := countRoutes(t, router)

	m := newTestManager(ManagerConfig{PluginDir: root, Priority: []string{}, CatchAll: "none"})
	m.LoadAll(context.Background(), router)

	assert.Equal(t, []string{"Silent"}, m.ListPlugins())
	assert.Equal(t, "0.1", m.GetPluginInfo("Silent").Version())
	assert.Equal(t, before, countRoutes(t, router))
	assert.Zero(t, m.FailureCount())
}

func TestLoadAll_EntryFileMissing(t *testing.T) {
	root := t.TempDir()
	// No builtin registered and no shared object on disk.
	makePluginDir(t, root, "Ghost", "")

	m := newTestManager(ManagerConfig{PluginDir: root, Priority: []string{}, CatchAll: "none"})
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Zero(t, m.Count())
	assert.Equal(t, 1, m.FailureCount())
}

func TestLoadAll_SearchPathIdempotent(t *testing.T) {
	t.Cleanup(ClearBuiltins)
	resetSearchPaths()

	root := t.TempDir()
	dir := makePluginDir(t, root, "Solo", "")
	require.NoError(t, RegisterBuiltin("Solo", Symbols{}))

	m := newTestManager(ManagerConfig{PluginDir: root, Priority: []string{}, CatchAll: "none"})
	m.LoadAll(context.Background(), mux.NewRouter())
	m.LoadAll(context.Background(), mux.NewRouter())

	assert.Equal(t, []string{dir}, SearchPaths())
}

func TestLoadAll_ContextCancelled(t *testing.T) {
	t.Cleanup(ClearBuiltins)

	root := t.TempDir()
	makePluginDir(t, root, "Late", "")
	require.NoError(t, RegisterBuiltin("Late", Symbols{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestManager(ManagerConfig{
		PluginDir: root,
		Priority:  []string{"Late"},
		CatchAll:  "none",
	})
	m.LoadAll(ctx, mux.NewRouter())

	assert.Zero(t, m.Count())
}

func TestGetPluginInfo_Unknown(t *testing.T) {
	m := newTestManager(ManagerConfig{PluginDir: t.TempDir()})

	info := m.GetPluginInfo("never-loaded")
	assert.NotNil(t, info)
	assert.Empty(t, info)
}

func TestLoadAll_EndToEnd(t *testing.T) {
	t.Cleanup(ClearBuiltins)

	root := t.TempDir()
	makePluginDir(t, root, "ILL", `
plugin_main_file = ill.so
plugin_description = Image loading layer
plugin_version = 1.0
`)
	require.NoError(t, RegisterBuiltin("ILL", Symbols{
		"register_ill_routes": func(r *mux.Router) {
			r.HandleFunc("/ill/status", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}).Methods("GET")
		},
	}))

	router := mux.NewRouter()
	before := countRoutes(t, router)

	m := newTestManager(ManagerConfig{PluginDir: root})
	m.LoadAll(context.Background(), router)

	assert.Equal(t, []string{"ILL"}, m.ListPlugins())
	assert.Equal(t, "1.0", m.GetPluginInfo("ILL").Version())
	assert.Equal(t, before+1, countRoutes(t, router))

	record, ok := m.GetRecord("ILL")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "ILL"), record.Path)
	assert.NotNil(t, record.Module)

	req, _ := http.NewRequest("GET", "/ill/status", nil)
	var match mux.RouteMatch
	assert.True(t, router.Match(req, &match))
}

func countRoutes(t *testing.T, router *mux.Router) int {
	t.Helper()
	count := 0
	err := router.Walk(func(*mux.Route, *mux.Router, []*mux.Route) error {
		count++
		return nil
	})
	require.NoError(t, err)
	return count
}
