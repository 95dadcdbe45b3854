package ui

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"statcalc/internal/present"
	"statcalc/ui/templates/fragments"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"fixed":  present.Fixed,
		"number": present.Number,
		"plain":  present.Plain,
		"list":   present.List,
		"percent": func(share float64) string {
			return present.Fixed(share*100, 0) + "%"
		},
		"add": func(a, b int) int { return a + b },
	}
}

// renderTemplate executes a template with the given data
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderStatus(w, http.StatusOK, templateName, data)
}

// renderStatus renders to a buffer first so a template error never leaves a
// half-written page behind
func (a *App) renderStatus(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("Template error for %s: %v (data type %T)", templateName, err, data)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	if !fragments.IsFragment(templateName) && !strings.Contains(buf.String(), "</html>") {
		a.logger.Warn("Rendered template %s appears truncated - missing </html> tag", templateName)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Error("Error writing template response: %v", err)
	}
}

// renderPartial renders an HTMX fragment
func (a *App) renderPartial(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplate(w, templateName, data)
}
