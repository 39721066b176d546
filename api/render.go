package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	loginPage  = "login"
	screenPage = "screen"
	uploadPage = "upload"
)

// renderer holds one parsed template set per page, each sharing the layout
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"lower":  strings.ToLower,
		"millis": func(d time.Duration) int64 { return d.Milliseconds() },
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{loginPage, screenPage, uploadPage} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (r *renderer) render(page string, data pageData) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, fmt.Errorf("executing %s template: %w", page, err)
	}
	return buf.Bytes(), nil
}
