package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdalog/isdalog/internal/store"
)

// NewRouter creates the /api/v1 router. Mount it under /api/v1.
func NewRouter(h *Handler, acq store.Acquirer) chi.Router {
	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(StoreMiddleware(acq, MapStoreError))

	r.Get("/health", h.Health)

	r.Route("/catches", func(r chi.Router) {
		r.Get("/", h.ListCatches)
		r.Post("/", h.CreateCatch)
		r.Get("/{id}", h.GetCatch)
		r.Put("/{id}", h.UpdateCatch)
		r.Delete("/{id}", h.DeleteCatch)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteProblem(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
