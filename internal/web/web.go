// Package web holds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page. Each page is addressed by its file name, e.g. "login.html".
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join": strings.Join,
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
