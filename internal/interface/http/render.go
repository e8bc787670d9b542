package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var errUnknownTemplate = errors.New("unknown template")

var pages = []string{"list", "login", "warehouse", "analytics", "error"}

type renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"actionsOf": func(ret string, row rowView) map[string]any {
			return map[string]any{"Return": ret, "Buttons": row.Buttons}
		},
	}
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		r.pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html"))
	}
	r.fragments = template.Must(template.New("fragments").Funcs(funcs).ParseFS(templateFS, "templates/partials.html"))
	return r
}

// page renders a full page inside the layout. Output is buffered so a
// template failure never leaves a half-written response.
func (v *renderer) page(w http.ResponseWriter, status int, name string, data layoutView) error {
	t, ok := v.pages[name]
	if !ok {
		return errUnknownTemplate
	}
	return v.write(w, status, t, "layout", data)
}

// fragment renders a partial on its own, for picker results.
func (v *renderer) fragment(w http.ResponseWriter, status int, name string, data any) error {
	return v.write(w, status, v.fragments, name, data)
}

func (v *renderer) write(w http.ResponseWriter, status int, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// render draws a page for the signed-in user, consuming any flashed toast.
func (a *API) render(w http.ResponseWriter, r *http.Request, status int, name, title, active string, content any, panel *Toast) {
	user := getAuthUser(r.Context())
	data := layoutView{
		Title:   title,
		User:    user,
		Toast:   a.takeFlash(r),
		Error:   panel,
		Content: content,
	}
	if user != nil {
		data.Nav = navigation(user, active)
	}
	if err := a.views.page(w, status, name, data); err != nil {
		a.logger.ErrorContext(r.Context(), "render page", "page", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderWithToast is render with a toast shown immediately instead of flashed.
func (a *API) renderWithToast(w http.ResponseWriter, r *http.Request, status int, name, title, active string, content any, toast Toast) {
	a.flash(r, toast)
	a.render(w, r, status, name, title, active, content, nil)
}

// renderError shows the inline error panel used when a page cannot load.
func (a *API) renderError(w http.ResponseWriter, r *http.Request, status int, t Toast) {
	a.render(w, r, status, "error", t.Title, "", nil, &t)
}
