package handler

import (
	"net/http"

	"github.com/msomdec/ocean-watch/internal/content"
	"github.com/msomdec/ocean-watch/internal/view"
)

// PageHandler serves the static catalog pages, the legacy *.html
// filenames and the not-found page.
type PageHandler struct {
	catalog *content.Catalog
	views   *view.Views
	// targets maps a current page path to the handler that serves it, so a
	// legacy filename renders exactly what its new path renders.
	targets map[string]http.Handler
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(catalog *content.Catalog, views *view.Views) *PageHandler {
	return &PageHandler{
		catalog: catalog,
		views:   views,
		targets: make(map[string]http.Handler),
	}
}

// HandlePage returns a handler rendering the catalog page with the given slug.
func (h *PageHandler) HandlePage(slug string) http.HandlerFunc {
	page, ok := h.catalog.Page(slug)
	if !ok {
		return h.HandleNotFound
	}
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, h.views.StaticPage(page))
	}
}

// HandleLegacy serves GET /{name} for the whitelisted historical filenames.
// Anything outside the whitelist is a 404.
func (h *PageHandler) HandleLegacy(w http.ResponseWriter, r *http.Request) {
	target, ok := h.catalog.ResolveLegacy(r.PathValue("name"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	next, ok := h.targets[target]
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	next.ServeHTTP(w, r)
}

// HandleNotFound renders the 404 page.
func (h *PageHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	render(w, r, h.views.NotFoundPage())
}

func (h *PageHandler) addTarget(path string, next http.Handler) {
	h.targets[path] = next
}
