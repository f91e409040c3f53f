package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dstokesj/loginbench/internal/login"
)

// Templates and static assets are embedded so the fixture serves the
// same markup regardless of working directory.
//
//go:embed templates static
var assets embed.FS

// TemplateData holds common data passed to templates
type TemplateData struct {
	Username  string              // Repopulates the username field after a non-script submission
	Status    login.StatusDisplay // Text and style class for the status region
	CSRFToken string              // CSRF token for the form and the JSON boundary
	Version   string
}

// renderTemplate renders a page template inside the base layout. All
// user-originated strings pass through html/template and are escaped
// contextually; nothing is concatenated into markup.
func renderTemplate(w http.ResponseWriter, templateName string, data TemplateData) error {
	tmpl, err := template.ParseFS(assets,
		"templates/layouts/base.html",
		"templates/pages/"+templateName+".html",
	)
	if err != nil {
		return err
	}

	return tmpl.ExecuteTemplate(w, "base", data)
}

// StaticFS returns the embedded static asset tree rooted at static/
func StaticFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
