// Package api implements the host HTTP server: the shared gorilla/mux
// router plugins register into, plus the built-in routes that exist even
// when zero plugins load.
//
// Built-in routes:
//
//	GET /         informational HTML page listing loaded plugins
//	GET /plugins  JSON document mapping plugin name to manifest
//
// Both are thin presentation layers over the plugin manager's
// introspection surface (ListPlugins, GetPluginInfo).
package api
