package api

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
}

// pages holds the parsed dashboard and error page templates.
var pages = template.Must(template.New("").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"))
