package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdalog/isdalog/internal/api"
	"github.com/isdalog/isdalog/internal/store"
)

// NewRouter creates the dashboard router. Every page acquires its own
// store; static assets do not.
func NewRouter(h *Handler, acq store.Acquirer) chi.Router {
	r := chi.NewRouter()

	r.Handle("/css/*", http.StripPrefix("/css/", http.FileServer(http.FS(h.static))))

	r.Group(func(r chi.Router) {
		r.Use(api.StoreMiddleware(acq, h.unavailable))

		r.Get("/", h.Index)
		r.Get("/catches/new", h.NewCatch)
		r.Post("/catches", h.CreateCatch)
		r.Get("/catches/{id}/edit", h.EditCatch)
		r.Post("/catches/{id}", h.UpdateCatch)
		r.Post("/catches/{id}/delete", h.DeleteCatch)
		r.Get("/delete", h.LegacyDelete)
	})

	return r
}
