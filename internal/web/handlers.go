package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isdalog/isdalog/internal/api"
	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/metrics"
	"github.com/isdalog/isdalog/internal/query"
	"github.com/isdalog/isdalog/internal/store"
)

// Flash values carried on the list URL after a write.
const (
	statusSuccess = "success"
	statusUpdated = "updated"
	statusDeleted = "deleted"
)

func redirectToList(w http.ResponseWriter, r *http.Request, status string) {
	target := "/"
	if status != "" {
		target = "/?status=" + status
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	sort := query.ParseSort(q.Get("sort"), q.Get("order"))

	records, err := api.MustStoreFromContext(r.Context()).ListCatches(r.Context(), search, sort)
	if err != nil {
		slog.Error("list catches failed", "error", err, "request_id", api.GetRequestID(r.Context()))
		h.renderError(w, http.StatusInternalServerError, msgRequestFail)
		return
	}

	h.render(w, http.StatusOK, pageIndex, newIndexView(records, search, sort, q.Get("status")))
}

// NewCatch handles GET /catches/new
func (h *Handler) NewCatch(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageForm, createForm(catch.RawFields{}, nil))
}

// CreateCatch handles POST /catches
func (h *Handler) CreateCatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "The form could not be read.")
		return
	}

	res := catch.Validate(catch.FieldsFromForm(r.PostForm))
	if !res.Valid() {
		h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeInvalid)
		h.render(w, http.StatusUnprocessableEntity, pageForm, createForm(res.Input, res.Errors))
		return
	}

	if _, err := api.MustStoreFromContext(r.Context()).CreateCatch(r.Context(), *res.Record); err != nil {
		h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeFailed)
		slog.Error("create catch failed", "error", err, "request_id", api.GetRequestID(r.Context()))
		view := createForm(res.Input, nil)
		view.DBError = msgSaveFailed
		h.render(w, http.StatusInternalServerError, pageForm, view)
		return
	}
	h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeCommitted)

	redirectToList(w, r, statusSuccess)
}

// EditCatch handles GET /catches/{id}/edit
func (h *Handler) EditCatch(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(chi.URLParam(r, "id"))
	if !ok {
		redirectToList(w, r, "")
		return
	}

	rec, ok := h.loadCatch(w, r, id)
	if !ok {
		return
	}

	h.render(w, http.StatusOK, pageForm, editForm(id, catch.FieldsFromRecord(*rec), nil))
}

// UpdateCatch handles POST /catches/{id}
func (h *Handler) UpdateCatch(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(chi.URLParam(r, "id"))
	if !ok {
		redirectToList(w, r, "")
		return
	}

	if _, ok := h.loadCatch(w, r, id); !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "The form could not be read.")
		return
	}

	res := catch.Validate(catch.FieldsFromForm(r.PostForm))
	if !res.Valid() {
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeInvalid)
		h.render(w, http.StatusUnprocessableEntity, pageForm, editForm(id, res.Input, res.Errors))
		return
	}

	err := api.MustStoreFromContext(r.Context()).UpdateCatch(r.Context(), id, *res.Record)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeNotFound)
		h.renderError(w, http.StatusNotFound, msgNotFound)
		return
	case err != nil:
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeFailed)
		slog.Error("update catch failed", "error", err, "id", id, "request_id", api.GetRequestID(r.Context()))
		view := editForm(id, res.Input, nil)
		view.DBError = msgUpdateFailed
		h.render(w, http.StatusInternalServerError, pageForm, view)
		return
	}
	h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeCommitted)

	redirectToList(w, r, statusUpdated)
}

// loadCatch fetches the record being edited, writing the not-found or
// failure page itself when it cannot.
func (h *Handler) loadCatch(w http.ResponseWriter, r *http.Request, id int64) (*catch.Record, bool) {
	rec, err := api.MustStoreFromContext(r.Context()).GetCatch(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.renderError(w, http.StatusNotFound, msgNotFound)
		return nil, false
	case err != nil:
		slog.Error("get catch failed", "error", err, "id", id, "request_id", api.GetRequestID(r.Context()))
		h.renderError(w, http.StatusInternalServerError, msgRequestFail)
		return nil, false
	}
	return rec, true
}

// DeleteCatch handles POST /catches/{id}/delete
func (h *Handler) DeleteCatch(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, chi.URLParam(r, "id"))
}

// LegacyDelete handles GET /delete?id=
func (h *Handler) LegacyDelete(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, r.URL.Query().Get("id"))
}

func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, raw string) {
	id, ok := api.ParseID(raw)
	if !ok {
		redirectToList(w, r, "")
		return
	}

	err := api.MustStoreFromContext(r.Context()).DeleteCatch(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeNotFound)
		redirectToList(w, r, "")
		return
	case err != nil:
		h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeFailed)
		slog.Error("delete catch failed", "error", err, "id", id, "request_id", api.GetRequestID(r.Context()))
		h.renderError(w, http.StatusInternalServerError, msgRequestFail)
		return
	}
	h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeCommitted)

	redirectToList(w, r, statusDeleted)
}
