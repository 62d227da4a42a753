package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/isdalog/isdalog/internal/catch"
	"github.com/isdalog/isdalog/internal/query"
)

type flash struct {
	Class   string
	Icon    string
	Message string
}

var flashes = map[string]flash{
	"success": {"alert-success", "✅", "Success! New catch recorded successfully."},
	"updated": {"alert-warning", "✏️", "Update Complete! The catch record has been modified."},
	"deleted": {"alert-danger", "🗑️", "Record Deleted. The catch has been removed permanently."},
}

type sortHeader struct {
	Link  string
	Class string
	Label string
}

type indexView struct {
	Search string
	Sort   query.Sort
	Rows   []catch.Record
	Totals catch.Totals
	Flash  *flash
}

func newIndexView(records []catch.Record, search string, sort query.Sort, status string) indexView {
	v := indexView{
		Search: search,
		Sort:   sort,
		Rows:   records,
		Totals: catch.Summarize(records),
	}
	if f, ok := flashes[status]; ok {
		v.Flash = &f
	}
	return v
}

// SortLink returns the list URL that sorts by column, toggling direction when
// column is already active and keeping the search term.
func (v indexView) SortLink(column string) string {
	col := query.SortColumn(column)
	q := url.Values{}
	q.Set("sort", string(col))
	q.Set("order", string(v.Sort.Toggle(col)))
	if v.Search != "" {
		q.Set("search", v.Search)
	}
	return "/?" + q.Encode()
}

// SortClass is the header class for the sort indicator.
func (v indexView) SortClass(column string) string {
	if query.SortColumn(column) != v.Sort.Column {
		return ""
	}
	if v.Sort.Direction == query.Asc {
		return "sorted-asc"
	}
	return "sorted-desc"
}

// Header bundles what the sortable column header template needs.
func (v indexView) Header(column, label string) sortHeader {
	return sortHeader{Link: v.SortLink(column), Class: v.SortClass(column), Label: label}
}

type methodOption struct {
	Value    catch.Method
	Selected bool
}

type formView struct {
	Title       string
	Heading     string
	Action      string
	Submit      string
	SubmitClass string
	Input       catch.RawFields
	Errors      map[string]string
	DBError     string
}

func createForm(input catch.RawFields, errs map[string]string) formView {
	return formView{
		Title:       "Add Catch",
		Heading:     "🐟 Record New Catch",
		Action:      "/catches",
		Submit:      "Save Catch Record",
		SubmitClass: "btn-primary",
		Input:       input,
		Errors:      errs,
	}
}

func editForm(id int64, input catch.RawFields, errs map[string]string) formView {
	return formView{
		Title:       "Edit Catch",
		Heading:     "Edit Catch Record",
		Action:      "/catches/" + strconv.FormatInt(id, 10),
		Submit:      "Update Catch",
		SubmitClass: "btn-warning",
		Input:       input,
		Errors:      errs,
	}
}

// Methods lists the select options, keeping the submitted one selected.
func (v formView) Methods() []methodOption {
	opts := make([]methodOption, len(catch.Methods))
	for i, m := range catch.Methods {
		opts[i] = methodOption{Value: m, Selected: string(m) == strings.TrimSpace(v.Input.CatchMethod)}
	}
	return opts
}

// Error returns the sentence for a field's error, or "".
func (v formView) Error(field string) string {
	msg, ok := v.Errors[field]
	if !ok {
		return ""
	}
	return catch.Describe(field, msg)
}

// Invalid returns the input class marking a field in error.
func (v formView) Invalid(field string) string {
	if _, ok := v.Errors[field]; ok {
		return "is-invalid"
	}
	return ""
}

type errorView struct {
	Title   string
	Message string
}
