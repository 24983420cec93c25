package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/rscole87/nucamp/internal/campsite"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the page templates.
type Renderer struct {
	cfg       Config
	templates *template.Template
}

type pageData struct {
	Title string
	Model Model
}

type directoryData struct {
	Title     string
	BaseURL   string
	Campsites []*campsite.Campsite
}

// NewRenderer parses the embedded templates.
func NewRenderer(cfg Config) (*Renderer, error) {
	funcMap := template.FuncMap{
		"detailPath": DetailPath,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{cfg: cfg, templates: tmpl}, nil
}

// Config returns the renderer's link configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Detail renders the full detail page.
func (r *Renderer) Detail(w io.Writer, p Props) error {
	m := Detail(r.cfg, p)
	title := "NuCamp"
	if m.Mode == ModeContent {
		title = m.Campsite.Name + " - NuCamp"
	}
	return r.execute(w, "detail.html", pageData{Title: title, Model: m})
}

// Comments renders only the comment section.
func (r *Renderer) Comments(w io.Writer, p Props) error {
	return r.execute(w, "comments-partial", Detail(r.cfg, p))
}

// Directory renders the campsite directory.
func (r *Renderer) Directory(w io.Writer, campsites []*campsite.Campsite) error {
	return r.execute(w, "directory.html", directoryData{
		Title:     "Directory - NuCamp",
		BaseURL:   r.cfg.BaseURL,
		Campsites: campsites,
	})
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}
