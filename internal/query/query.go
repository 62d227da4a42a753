// Package query builds the parameterized SQL statements for the catches table.
//
// Values supplied by users are always bound as parameters. The only tokens
// interpolated into statement text are identifiers and keywords taken from
// closed sets defined in this package, because placeholders cannot stand in
// for a column name or a sort direction.
package query

import (
	"strings"

	"github.com/isdalog/isdalog/internal/catch"
)

// Table is the name of the catches table.
const Table = "catches"

// Columns is the select list shared by every read statement, in scan order.
const Columns = "id, species_name, weight_kg, price_per_kg, catch_date, catch_method, location, fisherman_notes"

// SortColumn is a column the listing may be ordered by.
type SortColumn string

const (
	SortCatchDate   SortColumn = "catch_date"
	SortSpeciesName SortColumn = "species_name"
	SortWeightKg    SortColumn = "weight_kg"
	SortPricePerKg  SortColumn = "price_per_kg"
)

// SortColumns lists the sortable columns.
var SortColumns = []SortColumn{SortCatchDate, SortSpeciesName, SortWeightKg, SortPricePerKg}

// orderExpr returns the ORDER BY expression for c. Amounts are kept as exact
// text in SQLite, so they are cast to order numerically on both drivers.
func (c SortColumn) orderExpr() string {
	switch c {
	case SortWeightKg, SortPricePerKg:
		return "CAST(" + string(c) + " AS DECIMAL(20,6))"
	default:
		return string(c)
	}
}

// Direction is an ORDER BY direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Default ordering for the listing.
const (
	DefaultColumn    = SortCatchDate
	DefaultDirection = Desc
)

// Sort is a validated (column, direction) pair.
type Sort struct {
	Column    SortColumn `json:"column"`
	Direction Direction  `json:"direction"`
}

// DefaultSort returns the listing's default ordering.
func DefaultSort() Sort {
	return Sort{Column: DefaultColumn, Direction: DefaultDirection}
}

// ParseSort maps untrusted request values onto the sort whitelist.
// Unknown columns fall back to catch_date and unknown directions to DESC.
// Direction matching ignores case.
func ParseSort(column, direction string) Sort {
	s := DefaultSort()
	for _, c := range SortColumns {
		if column == string(c) {
			s.Column = c
			break
		}
	}
	switch Direction(strings.ToUpper(direction)) {
	case Asc:
		s.Direction = Asc
	case Desc:
		s.Direction = Desc
	}
	return s
}

// Toggle returns the direction a header link for col should request next:
// ascending when col is already sorted descending, descending otherwise.
func (s Sort) Toggle(col SortColumn) Direction {
	if s.Column == col && s.Direction == Desc {
		return Asc
	}
	return Desc
}

// likeEscape is the escape character declared on LIKE clauses.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern wraps term for a substring LIKE match, escaping LIKE
// metacharacters so they match literally.
func containsPattern(term string) string {
	return "%" + likeReplacer.Replace(term) + "%"
}

// List builds the listing query. A non-empty search term filters on
// species_name or location containing the term. Rows are ordered by the
// whitelisted sort column, then by id in the same direction so ties are stable.
func List(search string, sort Sort) (string, []any) {
	sort = ParseSort(string(sort.Column), string(sort.Direction))

	var b strings.Builder
	var args []any

	b.WriteString("SELECT ")
	b.WriteString(Columns)
	b.WriteString(" FROM ")
	b.WriteString(Table)

	if search != "" {
		pattern := containsPattern(search)
		b.WriteString(" WHERE species_name LIKE ? ESCAPE '" + likeEscape + "' OR location LIKE ? ESCAPE '" + likeEscape + "'")
		args = append(args, pattern, pattern)
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(sort.Column.orderExpr())
	b.WriteString(" ")
	b.WriteString(string(sort.Direction))
	b.WriteString(", id ")
	b.WriteString(string(sort.Direction))

	return b.String(), args
}

// Get builds the single-row lookup by id.
func Get(id int64) (string, []any) {
	return "SELECT " + Columns + " FROM " + Table + " WHERE id = ?", []any{id}
}

// Count builds a row count over the whole table.
func Count() (string, []any) {
	return "SELECT COUNT(*) FROM " + Table, nil
}

// Insert builds the statement that creates a record. Decimals are bound in
// their exact string form.
func Insert(r catch.Record) (string, []any) {
	return "INSERT INTO " + Table + " (species_name, weight_kg, price_per_kg, catch_date, catch_method, location, fisherman_notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		recordArgs(r)
}

// Update builds the statement that overwrites every field of record id.
func Update(id int64, r catch.Record) (string, []any) {
	return "UPDATE " + Table + " SET species_name = ?, weight_kg = ?, price_per_kg = ?, catch_date = ?, catch_method = ?, location = ?, fisherman_notes = ? WHERE id = ?",
		append(recordArgs(r), id)
}

// Delete builds the statement that removes record id. Callers must have
// parsed id as an integer.
func Delete(id int64) (string, []any) {
	return "DELETE FROM " + Table + " WHERE id = ?", []any{id}
}

func recordArgs(r catch.Record) []any {
	return []any{
		r.SpeciesName,
		r.WeightKg.String(),
		r.PricePerKg.String(),
		r.CatchDate,
		string(r.CatchMethod),
		r.Location,
		r.FishermanNotes,
	}
}
