// Package web serves the server-rendered catch dashboard and its forms.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/metrics"
)

//go:embed templates/*.html static/*
var assets embed.FS

const (
	pageIndex = "index"
	pageForm  = "form"
	pageError = "error"
)

// Messages shown in place of storage errors.
const (
	msgUnavailable  = "Database connection failed. Please contact the administrator."
	msgSaveFailed   = "Database error: Could not save catch."
	msgUpdateFailed = "Database error: Could not update catch."
	msgRequestFail  = "Database error: Request could not be processed."
	msgNotFound     = "Record not found."
)

// Handler renders the dashboard pages. The per-request store comes from
// the context set by api.StoreMiddleware.
type Handler struct {
	pages   map[string]*template.Template
	static  fs.FS
	metrics *metrics.Metrics
}

// NewHandler parses the embedded templates.
func NewHandler(m *metrics.Metrics) (*Handler, error) {
	funcs := template.FuncMap{"number": catch.FormatAmount}

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageIndex, pageForm, pageError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(assets,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Handler{pages: pages, static: static, metrics: m}, nil
}

// render executes a page into a buffer first so a template failure never
// leaves a half-written page behind.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].Execute(&buf, data); err != nil {
		slog.Error("render page failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write page failed", "page", page, "error", err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, pageError, errorView{Title: errorTitle(status), Message: message})
}

// unavailable is the StoreMiddleware failure hook.
func (h *Handler) unavailable(w http.ResponseWriter, _ *http.Request, _ error) {
	h.renderError(w, http.StatusServiceUnavailable, msgUnavailable)
}

func errorTitle(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Something Went Wrong"
	}
}
