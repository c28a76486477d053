// Package web renders the HTML views from embedded templates.
// It is a thin presentation layer: handlers hand it a PageData and a page
// name, nothing else.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/glowtrack/glowtrack/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the view templates, each parsed together with the layout.
var pages = []string{
	"signup",
	"signin",
	"dashboard",
	"routine",
	"selfie",
	"streak",
	"reminders",
	"insights",
}

// PageData is the envelope every view receives.
type PageData struct {
	Title    string
	Username string
	Flashes  []session.Flash
	Data     any
}

// Views holds the parsed template sets.
type Views struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// New parses the embedded templates.
func New(logger *slog.Logger) (*Views, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Views{templates: templates, logger: logger}, nil
}

// Render writes the page with the given status code.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := v.templates[page]
	if !ok {
		v.logger.Error("unknown template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		v.logger.Error("render template", "page", page, "error", err)
	}
}
