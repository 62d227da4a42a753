package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/store"
	"github.com/isdalog/isdalog/internal/validation"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

type problemType struct {
	typeURI string
	title   string
}

// problemTypes maps HTTP status codes to RFC 7807 type URIs and titles.
var problemTypes = map[int]problemType{
	http.StatusBadRequest:          {"https://isdalog.dev/errors/bad-request", "Bad Request"},
	http.StatusNotFound:            {"https://isdalog.dev/errors/not-found", "Not Found"},
	http.StatusUnprocessableEntity: {"https://isdalog.dev/errors/validation-error", "Validation Error"},
	http.StatusInternalServerError: {"https://isdalog.dev/errors/internal-error", "Internal Server Error"},
	http.StatusServiceUnavailable:  {"https://isdalog.dev/errors/service-unavailable", "Service Unavailable"},
}

func newProblem(r *http.Request, status int, detail string) Problem {
	pt, ok := problemTypes[status]
	if !ok {
		pt = problemType{typeURI: "https://isdalog.dev/errors/unknown", title: http.StatusText(status)}
	}
	return Problem{
		Type:     pt.typeURI,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}
}

func writeProblemJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblemJSON(w, status, newProblem(r, status, detail))
}

// ProblemWithErrors extends Problem with field errors and the submitted input.
type ProblemWithErrors struct {
	Problem
	Errors []validation.ValidationError `json:"errors"`
	Input  *catch.RawFields             `json:"input,omitempty"`
}

// WriteProblemWithErrors writes a 422 Problem Details response with field
// errors, echoing input back when it is non-nil.
func WriteProblemWithErrors(w http.ResponseWriter, r *http.Request, detail string, errs []validation.ValidationError, input *catch.RawFields) {
	if errs == nil {
		errs = []validation.ValidationError{}
	}
	writeProblemJSON(w, http.StatusUnprocessableEntity, ProblemWithErrors{
		Problem: newProblem(r, http.StatusUnprocessableEntity, detail),
		Errors:  errs,
		Input:   input,
	})
}

// MapStoreError converts storage errors to Problem Details responses.
func MapStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteProblem(w, r, http.StatusNotFound, "Catch not found")
	case errors.Is(err, store.ErrUnavailable):
		WriteProblem(w, r, http.StatusServiceUnavailable, "Database unavailable")
	default:
		// Never expose internal error details to client
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
