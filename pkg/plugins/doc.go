// Package plugins implements the plugin discovery, ordering, loading, and
// route-registration engine of the ILLUSION CDN host.
//
// # Overview
//
// Each immediate subdirectory of the plugin root is one plugin. A plugin
// declares itself with a plugin.cfg manifest (line-oriented "key = value"
// text) and contributes request-handling behavior by exposing a
// registration entry point the engine invokes with the shared router.
//
// # Components
//
// Manifest: plugin.cfg parsed into a flat string mapping
// Loader: resolves a plugin's code unit, from the builtin registry or a
// shared object on disk, into an opaque Module handle
// Manager: walks the plugin root, applies the ordering policy, drives the
// load sequence per plugin, and keeps the registry of loaded plugins
//
// # Ordering
//
// Priority plugins load first, in listed order, when their directories
// exist. The catch-all plugin loads next, after everything that might
// register more specific routes, so its registration code can inspect the
// routes already on the router. All remaining directories load last in
// enumeration order.
//
// # Registration Contract
//
// The engine derives the entry point name from the plugin name: lower
// case, hyphens to underscores, wrapped as register_<name>_routes. The
// symbol must be a func(*mux.Router). Builtin modules declare it in their
// Symbols table; shared objects expose it through the exported CamelCase
// form the Go toolchain requires.
//
// # Failure Containment
//
// Every failure is contained at single-plugin granularity: a missing
// manifest, a missing entry file, a load error, or a panicking
// registration function is logged and the next plugin is attempted. A
// module with no registration entry point is still recorded as loaded; it
// simply adds no routes. Plugin loading can never prevent the host server
// from starting.
//
// # Usage Example
//
// Load plugins into a router:
//
//	manager := plugins.NewManager(plugins.ManagerConfig{PluginDir: "plugin"}, log)
//	manager.LoadAll(ctx, router)
//
//	for _, name := range manager.ListPlugins() {
//		info := manager.GetPluginInfo(name)
//		fmt.Printf("%s v%s\n", name, info.Version())
//	}
//
// # Related Packages
//
//   - pkg/api: hosts the shared router and the introspection endpoints
//   - pkg/config: plugin root, priority list, and catch-all configuration
package plugins
