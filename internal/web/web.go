// Package web holds the server-rendered admin pages.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses every admin page. Times are displayed in loc.
func Templates(loc *time.Location) (*template.Template, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("Mon 02 Jan 2006, 15:04")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
	return template.New("admin").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}
