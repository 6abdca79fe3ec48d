package echoweb

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// The view layer is deliberately thin: templates only lay out the data
// handed over by handlers.

//go:embed templates/*.html
var templatesFS embed.FS

type renderer struct {
	tpl *template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer() *renderer {
	return &renderer{tpl: template.Must(template.ParseFS(templatesFS, "templates/*.html"))}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name, data)
}
