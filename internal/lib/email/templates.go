package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

// Template names an email template pair under templates/.
type Template string

const (
	// TemplateOperatorNotification corresponds to templates/operator_notification.{html,txt}
	TemplateOperatorNotification Template = "operator_notification"

	// TemplateRequesterConfirmation corresponds to templates/requester_confirmation.{html,txt}
	TemplateRequesterConfirmation Template = "requester_confirmation"
)

// Templates lists every known template.
func Templates() []Template {
	return []Template{TemplateOperatorNotification, TemplateRequesterConfirmation}
}

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// Rendered holds both bodies of a template.
type Rendered struct {
	HTML string
	Text string
}

// Render executes the HTML and text variants of tmpl with data.
// User-supplied values are escaped in the HTML body.
func Render(tmpl Template, data any) (*Rendered, error) {
	var html bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, string(tmpl)+".html", data); err != nil {
		return nil, errors.Wrapf(err, "failed to execute email template %s (html)", tmpl)
	}

	var text bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, string(tmpl)+".txt", data); err != nil {
		return nil, errors.Wrapf(err, "failed to execute email template %s (text)", tmpl)
	}

	return &Rendered{
		HTML: html.String(),
		Text: strings.TrimSpace(text.String()) + "\n",
	}, nil
}
