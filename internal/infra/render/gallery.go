package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/PixabayGallery/internal/domain"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// GalleryRenderer turns image records into gallery card markup.
// It keeps no state between calls.
type GalleryRenderer struct {
	tmpl *template.Template
}

func NewGalleryRenderer() (*GalleryRenderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse gallery templates: %w", err)
	}
	return &GalleryRenderer{tmpl: tmpl}, nil
}

// Render returns one card per item, in the order given.
func (r *GalleryRenderer) Render(items []domain.ImageRecord) (template.HTML, error) {
	if len(items) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "cards", items); err != nil {
		return "", fmt.Errorf("failed to render %d cards: %w", len(items), err)
	}
	return template.HTML(buf.String()), nil
}
