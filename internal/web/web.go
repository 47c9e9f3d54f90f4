// Package web embeds the HTML templates and static assets of the summary page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// Static serves the embedded assets rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
