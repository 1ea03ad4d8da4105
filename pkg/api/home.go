package api

import (
	"html/template"
	"net/http"

	"github.com/illussion-cdn/illusion/pkg/httputil"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
    <head>
        <title>ILLUSION CDN Server</title>
        <style>
            body {
                font-family: Arial, sans-serif;
                margin: 40px;
                line-height: 1.6;
            }
            h1 {
                color: #333;
            }
            .info {
                background-color: #f5f5f5;
                padding: 15px;
                border-radius: 5px;
                margin: 20px 0;
            }
            code {
                background-color: #eee;
                padding: 2px 5px;
                border-radius: 3px;
            }
            ul {
                margin: 10px 0;
            }
            li {
                margin: 5px 0;
            }
        </style>
    </head>
    <body>
        <h1>ILLUSION CDN Server with plugin system</h1>
        <div class="info">
            <p>The server is up and ready.</p>
            {{if .Plugins}}
            <h2>Loaded plugins:</h2>
            <ul>
                {{range .Plugins}}<li><strong>{{.Name}}</strong> - {{.Description}}</li>
                {{end}}
            </ul>
            {{end}}
            <p>Reach us on Discord:</p>
            <p><code>https://discord.gg/illussion</code></p>
            <p>Reach us on Telegram:</p>
            <p><code>https://t.me/illussion_cdn</code></p>
        </div>
    </body>
</html>
`))

type homePlugin struct {
	Name        string
	Description string
	Version     string
}

// home renders the informational HTML page listing loaded plugins with
// description and version pulled from each manifest.
func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	var loaded []homePlugin
	for _, name := range s.plugins.ListPlugins() {
		manifest := s.plugins.GetPluginInfo(name)
		description := manifest.Description()
		if description == "" {
			description = "No description provided"
		}
		loaded = append(loaded, homePlugin{
			Name:        name,
			Description: description,
			Version:     manifest.Version(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, struct{ Plugins []homePlugin }{loaded}); err != nil {
		httputil.WriteInternalError(w, err)
	}
}
