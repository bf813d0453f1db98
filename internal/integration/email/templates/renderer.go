// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/ecoimpact/backend/internal/application/adapter"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Fall back to empty text if no text template exists
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// DigestSuggestion is one line of the coaching digest.
type DigestSuggestion struct {
	Title       string
	Description string
	Category    string
	SavingsKg   string
}

// DigestData contains data for the coaching digest template.
type DigestData struct {
	UserName       string
	Suggestions    []DigestSuggestion
	TotalSavingsKg string
}

// NewDigestData flattens a digest for the templates.
func NewDigestData(digest adapter.CoachingDigest) DigestData {
	name := digest.User.DisplayName
	if name == "" {
		name = digest.User.Email
	}

	data := DigestData{
		UserName:       name,
		Suggestions:    make([]DigestSuggestion, 0, len(digest.Suggestions)),
		TotalSavingsKg: fmt.Sprintf("%.1f", digest.TotalSavingsKg),
	}
	for _, s := range digest.Suggestions {
		data.Suggestions = append(data.Suggestions, DigestSuggestion{
			Title:       s.Title,
			Description: s.Description,
			Category:    s.CategoryName,
			SavingsKg:   fmt.Sprintf("%.1f", s.EstimatedSavingsKg),
		})
	}
	return data
}
