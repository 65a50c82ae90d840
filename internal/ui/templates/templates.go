// Package templates renders the dashboard page and the fragments patched into
// it over SSE.
package templates

import (
	"context"
	"embed"
	"html/template"
	"io"
	"slices"
	"time"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

const Title = "Enhanced Sales Dashboard"

//go:embed *.html
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"date":     func(t time.Time) string { return t.Format(models.DateLayout) },
	"selected": func(values []string, v string) bool { return slices.Contains(values, v) },
}).ParseFS(files, "*.html"))

// Page is the first paint of the dashboard. Signals is the JSON object the
// browser starts from; it carries the selection and the chart configs.
type Page struct {
	Title   string
	View    models.ViewModel
	Signals string
}

func Dashboard(p Page) templ.Component {
	if p.Title == "" {
		p.Title = Title
	}
	return execute("dashboard", p)
}

// KPIs renders the #kpis block: the three headline figures or, for an empty
// subset, the notice.
func KPIs(vm models.ViewModel) templ.Component {
	return execute("kpis", vm)
}

func execute(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages.ExecuteTemplate(w, name, data)
	})
}
