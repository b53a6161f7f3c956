package rendering

import (
	"embed"
	"html/template"
	"strings"
)

const profileTemplate = "profile.html.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/"+profileTemplate))

// RenderHTML renders doc as a standalone A4 HTML page. All values are escaped.
func RenderHTML(doc Document) (string, error) {
	var sb strings.Builder
	if err := pageTemplate.ExecuteTemplate(&sb, profileTemplate, doc); err != nil {
		return "", &TemplateError{Template: profileTemplate, Cause: err}
	}
	return sb.String(), nil
}
