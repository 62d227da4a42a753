package catch

import (
	"net/url"
	"strings"

	"github.com/isdalog/isdalog/internal/validation"
)

// Error keys used by forms to place messages next to inputs.
const (
	FieldSpecies  = "species"
	FieldWeight   = "weight"
	FieldPrice    = "price"
	FieldDate     = "date"
	FieldMethod   = "method"
	FieldLocation = "location"
	FieldNotes    = "notes"
)

// Fields lists the error keys in form order.
var Fields = []string{FieldSpecies, FieldWeight, FieldPrice, FieldDate, FieldMethod, FieldLocation, FieldNotes}

// Column widths the text inputs must fit.
const (
	MaxTextLength  = 255 // species_name, location
	MaxDateLength  = 32
	MaxNotesLength = 16383 // TEXT holds 65535 bytes of utf8mb4
)

// RawFields is the user's input exactly as submitted.
type RawFields struct {
	SpeciesName    string `json:"species_name"`
	WeightKg       string `json:"weight_kg"`
	PricePerKg     string `json:"price_per_kg"`
	CatchDate      string `json:"catch_date"`
	CatchMethod    string `json:"catch_method"`
	Location       string `json:"location"`
	FishermanNotes string `json:"fisherman_notes"`
}

// FieldsFromForm reads the catch inputs from a submitted form.
func FieldsFromForm(form url.Values) RawFields {
	return RawFields{
		SpeciesName:    form.Get("species_name"),
		WeightKg:       form.Get("weight_kg"),
		PricePerKg:     form.Get("price_per_kg"),
		CatchDate:      form.Get("catch_date"),
		CatchMethod:    form.Get("catch_method"),
		Location:       form.Get("location"),
		FishermanNotes: form.Get("fisherman_notes"),
	}
}

// FieldsFromRecord renders a stored record back into form inputs.
func FieldsFromRecord(r Record) RawFields {
	return RawFields{
		SpeciesName:    r.SpeciesName,
		WeightKg:       r.WeightKg.String(),
		PricePerKg:     r.PricePerKg.String(),
		CatchDate:      r.CatchDate,
		CatchMethod:    string(r.CatchMethod),
		Location:       r.Location,
		FishermanNotes: r.FishermanNotes,
	}
}

// Result is the outcome of validating one submission.
// Input always holds the original values so a form can be redisplayed as typed.
// Record is set only when Errors is empty.
type Result struct {
	Input  RawFields
	Record *Record
	Errors map[string]string
}

// Valid reports whether the submission produced a record.
func (r Result) Valid() bool {
	return r.Record != nil
}

// Validate checks every field, collecting all failures, and normalizes the
// input into a Record when nothing failed.
func Validate(raw RawFields) Result {
	species := strings.TrimSpace(raw.SpeciesName)
	weight := strings.TrimSpace(raw.WeightKg)
	price := strings.TrimSpace(raw.PricePerKg)
	date := strings.TrimSpace(raw.CatchDate)
	method := strings.TrimSpace(raw.CatchMethod)
	location := strings.TrimSpace(raw.Location)
	notes := strings.TrimSpace(raw.FishermanNotes)

	var c validation.Collector
	rec := Record{
		SpeciesName:    species,
		CatchDate:      date,
		CatchMethod:    Method(method),
		Location:       location,
		FishermanNotes: notes,
	}

	c.Add(validation.ValidateRequired(FieldSpecies, species))
	addTextChecks(&c, FieldSpecies, species, MaxTextLength)

	if err := validation.ValidateRequired(FieldWeight, weight); err != nil {
		c.Add(err)
	} else {
		d, verr := validation.ValidatePositiveDecimal(FieldWeight, weight)
		c.Add(verr)
		rec.WeightKg = d
	}

	if err := validation.ValidateRequired(FieldPrice, price); err != nil {
		c.Add(err)
	} else {
		d, verr := validation.ValidateNonNegativeDecimal(FieldPrice, price)
		c.Add(verr)
		rec.PricePerKg = d
	}

	c.Add(validation.ValidateRequired(FieldDate, date))
	addTextChecks(&c, FieldDate, date, MaxDateLength)
	c.Add(validation.ValidateEnum(FieldMethod, method, methodNames()))

	c.Add(validation.ValidateRequired(FieldLocation, location))
	addTextChecks(&c, FieldLocation, location, MaxTextLength)

	addTextChecks(&c, FieldNotes, notes, MaxNotesLength)

	res := Result{Input: raw, Errors: c.Map()}
	if !c.HasErrors() {
		res.Record = &rec
	}
	return res
}

// addTextChecks rejects text the database columns would refuse.
func addTextChecks(c *validation.Collector, field, value string, max int) {
	c.Add(validation.ValidateUTF8(field, value))
	c.Add(validation.ValidateNoNullBytes(field, value))
	c.Add(validation.ValidateMaxLength(field, value, max))
}

// FieldErrors returns the errors as a list in form order.
func (r Result) FieldErrors() []validation.ValidationError {
	var out []validation.ValidationError
	for _, f := range Fields {
		if msg, ok := r.Errors[f]; ok {
			out = append(out, validation.ValidationError{Field: f, Message: msg})
		}
	}
	return out
}

// Labels maps error keys to the human name of the input.
var Labels = map[string]string{
	FieldSpecies:  "Species name",
	FieldWeight:   "Weight",
	FieldPrice:    "Price",
	FieldDate:     "Catch date",
	FieldMethod:   "Catch method",
	FieldLocation: "Location",
	FieldNotes:    "Notes",
}

// Describe turns an error entry into a sentence such as
// "Weight must be a valid positive number."
func Describe(field, message string) string {
	label, ok := Labels[field]
	if !ok {
		label = field
	}
	return label + " " + message + "."
}
