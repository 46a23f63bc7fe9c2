package api

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the JSON API and the embedded map page.
func NewRouter(h *Handler, static fs.FS) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/properties", h.ListProperties)
		r.Get("/properties/{id}", h.GetProperty)
		r.Get("/amenities", h.Amenities)
		r.Get("/insights", h.Insights)
		r.Get("/searches", h.RecentSearches)
	})
	r.Get("/healthz", h.Health)

	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

// StaticFS strips the embed prefix so index.html serves at the root.
func StaticFS(embedded fs.FS) (fs.FS, error) {
	return fs.Sub(embedded, "static")
}
