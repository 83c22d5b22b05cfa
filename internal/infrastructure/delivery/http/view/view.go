// Package view renders the downloader page from a page.View.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"vidpeek/internal/consts"
	"vidpeek/internal/page"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Site holds the document metadata of the page.
type Site struct {
	Title       string
	Description string
	Keywords    string
}

// DefaultSite is the document metadata of the downloader page.
var DefaultSite = Site{
	Title: "YouTube Video Downloader | Download YouTube Videos Easily",
	Description: "Download YouTube videos and shorts in high quality. " +
		"Preview videos before downloading in your preferred format and resolution.",
	Keywords: "youtube downloader, youtube video downloader, download youtube shorts, " +
		"youtube to mp4, free youtube downloader",
}

// Data is what the page template receives.
type Data struct {
	View   page.View
	Site   Site
	Notice string
	Year   int
}

// Renderer executes the embedded page template.
type Renderer struct {
	tmpl *template.Template
	site Site
	now  func() time.Time
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl, site: DefaultSite, now: time.Now}, nil
}

// Render writes the page for v to w. The page is rendered fully before anything is written.
func (r *Renderer) Render(w io.Writer, v page.View) error {
	var buf bytes.Buffer

	err := r.tmpl.ExecuteTemplate(&buf, "index", Data{
		View:   v,
		Site:   r.site,
		Notice: consts.MsgTransferCompleted,
		Year:   r.now().Year(),
	})
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}

	return sub
}
