package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/internal/board"
)

const (
	boardTemplate = "templates/board.html.tmpl"
	stylesheet    = "templates/style.css"

	StylesheetName = "style.css"
)

//go:embed templates
var templatesFS embed.FS

// HTMLRenderer serializes a board document into a standalone HTML page.
type HTMLRenderer struct {
	logger *logrus.Logger
	tmpl   *template.Template
	policy *bluemonday.Policy
}

func NewHTMLRenderer(logger *logrus.Logger) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		logger: logger,
		policy: bluemonday.UGCPolicy(),
	}

	tmpl, err := template.New("board.html.tmpl").
		Funcs(template.FuncMap{"sanitize": r.sanitize}).
		ParseFS(templatesFS, boardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", boardTemplate, err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Render writes the page for doc to w.
func (r *HTMLRenderer) Render(w io.Writer, doc *board.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if err := r.tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// RenderBytes renders doc into memory so a failed render never leaves a
// partial page behind.
func (r *HTMLRenderer) RenderBytes(doc *board.Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := r.Render(buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sanitize keeps simple inline markup in descriptions and strips the rest.
func (r *HTMLRenderer) sanitize(s string) template.HTML {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	clean := r.policy.Sanitize(s)
	if clean != s {
		r.logger.WithField("description", s).Debug("Description altered during sanitization")
	}
	return template.HTML(clean)
}

// Stylesheet returns the default board stylesheet.
func Stylesheet() ([]byte, error) {
	data, err := templatesFS.ReadFile(stylesheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", stylesheet, err)
	}
	return data, nil
}
