package handlers

import (
	"html/template"
	"net/http"

	"fuel-backend/templates"
)

type PageHandler struct {
	templates *template.Template
}

func NewPageHandler() *PageHandler {
	// Parse all templates from embedded filesystem
	templates := template.Must(template.ParseFS(templates.FS, "*.html"))

	return &PageHandler{
		templates: templates,
	}
}

// StudioPage serves the studio landing page
func (h *PageHandler) StudioPage(w http.ResponseWriter, r *http.Request) {
	h.templates.ExecuteTemplate(w, "studio.html", nil)
}
