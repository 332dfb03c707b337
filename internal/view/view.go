// Package view renders the server side pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/mirzahilmi/interaktifkredi/internal/session"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page holds what the shared layout needs. Page data structs embed it.
type Page struct {
	Title    string
	Customer *session.Session
	Success  string
	Error    string
}

// NewPage starts the page data of r with the signed in customer, if any.
func NewPage(r *http.Request, title string) Page {
	customer, _ := session.FromContext(r.Context())
	return Page{Title: title, Customer: customer}
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout.
func New() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, path := range names {
		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		if name == "layout" {
			continue
		}
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the page called name. The page is rendered into a buffer
// first so a template error never leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug().Err(err).Str("page", name).Msg("client went away")
	}
}

// Error renders the generic error page.
func (r *Renderer) Error(w http.ResponseWriter, status int, message string) {
	r.Render(w, status, "error", Page{Title: "Hata", Error: message})
}

// Static serves the embedded css, js and data files.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
