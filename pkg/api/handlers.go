package api

import (
	"net/http"

	"github.com/illussion-cdn/illusion/pkg/httputil"
	"github.com/illussion-cdn/illusion/pkg/plugins"
)

// pluginsInfo returns a JSON document mapping each loaded plugin's name
// to its manifest.
func (s *Server) pluginsInfo(w http.ResponseWriter, r *http.Request) {
	info := make(map[string]plugins.Manifest)
	for _, name := range s.plugins.ListPlugins() {
		info[name] = s.plugins.GetPluginInfo(name)
	}
	httputil.WriteSuccess(w, info)
}
