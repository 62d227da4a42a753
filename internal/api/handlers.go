package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/metrics"
	"github.com/isdalog/isdalog/internal/query"
	"github.com/isdalog/isdalog/internal/store"
	"github.com/isdalog/isdalog/internal/types"
)

// Handler implements the API handlers. The per-request store comes from
// the context set by StoreMiddleware.
type Handler struct {
	version string
	driver  string
	metrics *metrics.Metrics
}

// NewHandler creates a new Handler.
func NewHandler(version, driver string, m *metrics.Metrics) *Handler {
	return &Handler{
		version: version,
		driver:  driver,
		metrics: m,
	}
}

// ParseID parses a positive record id from a path or query value.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := ParseID(chi.URLParam(r, "id"))
	if !ok {
		WriteProblem(w, r, http.StatusBadRequest, "Catch id must be a positive integer")
	}
	return id, ok
}

func decodeFields(w http.ResponseWriter, r *http.Request) (catch.RawFields, bool) {
	var raw catch.RawFields
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return raw, false
	}
	return raw, true
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := MustStoreFromContext(r.Context()).CountCatches(r.Context())
	if err != nil {
		slog.Error("health count failed", "error", err)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Driver:     h.driver,
		CatchCount: count,
	})
}

// ListCatches handles GET /api/v1/catches
func (h *Handler) ListCatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	sort := query.ParseSort(q.Get("sort"), q.Get("order"))

	records, err := MustStoreFromContext(r.Context()).ListCatches(r.Context(), search, sort)
	if err != nil {
		slog.Error("list catches failed", "error", err)
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.NewCatchList(records, search, types.SortInfo{
		Column: string(sort.Column),
		Order:  string(sort.Direction),
	}))
}

// GetCatch handles GET /api/v1/catches/{id}
func (h *Handler) GetCatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := MustStoreFromContext(r.Context()).GetCatch(r.Context(), id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("get catch failed", "error", err, "id", id)
		}
		MapStoreError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.NewCatch(*rec))
}

// CreateCatch handles POST /api/v1/catches
func (h *Handler) CreateCatch(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeFields(w, r)
	if !ok {
		return
	}

	res := catch.Validate(raw)
	if !res.Valid() {
		h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeInvalid)
		WriteProblemWithErrors(w, r, "Catch contains invalid fields", res.FieldErrors(), &res.Input)
		return
	}

	id, err := MustStoreFromContext(r.Context()).CreateCatch(r.Context(), *res.Record)
	if err != nil {
		h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeFailed)
		slog.Error("create catch failed", "error", err)
		MapStoreError(w, r, err)
		return
	}
	h.metrics.CountWrite(metrics.OpCreate, metrics.OutcomeCommitted)

	rec := *res.Record
	rec.ID = id
	w.Header().Set("Location", fmt.Sprintf("/api/v1/catches/%d", id))
	writeJSON(w, http.StatusCreated, types.NewCatch(rec))
}

// UpdateCatch handles PUT /api/v1/catches/{id}
func (h *Handler) UpdateCatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	raw, ok := decodeFields(w, r)
	if !ok {
		return
	}

	res := catch.Validate(raw)
	if !res.Valid() {
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeInvalid)
		WriteProblemWithErrors(w, r, "Catch contains invalid fields", res.FieldErrors(), &res.Input)
		return
	}

	err := MustStoreFromContext(r.Context()).UpdateCatch(r.Context(), id, *res.Record)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeNotFound)
		MapStoreError(w, r, err)
		return
	case err != nil:
		h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeFailed)
		slog.Error("update catch failed", "error", err, "id", id)
		MapStoreError(w, r, err)
		return
	}
	h.metrics.CountWrite(metrics.OpUpdate, metrics.OutcomeCommitted)

	rec := *res.Record
	rec.ID = id
	writeJSON(w, http.StatusOK, types.NewCatch(rec))
}

// DeleteCatch handles DELETE /api/v1/catches/{id}
func (h *Handler) DeleteCatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := MustStoreFromContext(r.Context()).DeleteCatch(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeNotFound)
		MapStoreError(w, r, err)
		return
	case err != nil:
		h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeFailed)
		slog.Error("delete catch failed", "error", err, "id", id)
		MapStoreError(w, r, err)
		return
	}
	h.metrics.CountWrite(metrics.OpDelete, metrics.OutcomeCommitted)

	w.WriteHeader(http.StatusNoContent)
}
