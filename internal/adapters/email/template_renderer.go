package email

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"announcehub/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer renders the embedded template files. Each template name
// maps to three files: <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewTemplateRenderer parses every embedded template up front so a broken
// template fails at startup instead of on first send.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &templateRenderer{html: html, text: text}, nil
}

// Render executes the template set for templateName (e.g. "welcome") and
// returns the message body. The recipient is left empty.
func (r *templateRenderer) Render(templateName string, data any) (domain.EmailMessage, error) {
	subject, err := r.execText(templateName+"_subject.txt", data)
	if err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render subject for %q: %w", templateName, err)
	}
	htmlBody, err := r.execHTML(templateName+".html", data)
	if err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render html for %q: %w", templateName, err)
	}
	textBody, err := r.execText(templateName+".txt", data)
	if err != nil {
		return domain.EmailMessage{}, fmt.Errorf("render text for %q: %w", templateName, err)
	}
	return domain.EmailMessage{
		Subject:  strings.TrimSpace(subject),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

func (r *templateRenderer) execHTML(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.html.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *templateRenderer) execText(name string, data any) (string, error) {
	var sb strings.Builder
	if err := r.text.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
