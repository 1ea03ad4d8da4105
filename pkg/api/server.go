package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/illussion-cdn/illusion/pkg/plugins"
)

// Server hosts the built-in routes and the shared router plugins extend
// during the startup load phase.
type Server struct {
	router  *mux.Router
	plugins *plugins.Manager
}

// NewServer creates the host server around a plugin manager. Built-in
// routes are registered immediately; plugin routes arrive when the
// manager's LoadAll runs against Router().
func NewServer(manager *plugins.Manager) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		plugins: manager,
	}
	s.setupRoutes()
	return s
}

// Router exposes the shared dispatch surface handed to plugins during
// registration.
func (s *Server) Router() *mux.Router {
	return s.router
}

// setupRoutes configures the built-in routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.home).Methods("GET")
	s.router.HandleFunc("/plugins", s.pluginsInfo).Methods("GET")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
