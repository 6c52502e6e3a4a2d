package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// setupTemplates parses the embedded page templates and installs them on
// the router, along with the static assets. Embedding keeps the binary
// self-contained.
func (s *Server) setupTemplates() error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	s.router.SetHTMLTemplate(tmpl)

	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	s.router.StaticFS("/static", http.FS(assets))
	return nil
}
