package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler renders the HTML entry points. The JSON API does the real work;
// these pages are a thin convenience front.
type PageHandler struct {
	templates *template.Template
	secret    []byte
}

func NewPageHandler(sessionSecret string) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		templates: tmpl,
		secret:    []byte(sessionSecret),
	}, nil
}

// PageRouter registers the page routes on the given router.
func PageRouter(r chi.Router, handler *PageHandler) {
	r.Get("/", handler.Index)
	r.Get("/login", handler.LoginPage)
}

// Index renders the inventory page, redirecting to the login page when no
// valid session is present.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	username, err := sessionUsername(r, h.secret)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.render(w, "index.html", map[string]any{"Username": username})
}

// LoginPage renders the login form.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", nil)
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
