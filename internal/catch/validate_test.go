package catch

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() RawFields {
	return RawFields{
		SpeciesName:    "Tilapia",
		WeightKg:       "2.5",
		PricePerKg:     "120",
		CatchDate:      "2024-01-10",
		CatchMethod:    "Net",
		Location:       "Laguna Bay",
		FishermanNotes: "",
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	res := Validate(validFields())

	require.True(t, res.Valid(), "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
	assert.Equal(t, "Tilapia", res.Record.SpeciesName)
	assert.True(t, res.Record.WeightKg.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, res.Record.PricePerKg.Equal(decimal.RequireFromString("120")))
	assert.Equal(t, "2024-01-10", res.Record.CatchDate)
	assert.Equal(t, MethodNet, res.Record.CatchMethod)
	assert.Equal(t, "Laguna Bay", res.Record.Location)
	assert.Equal(t, "", res.Record.FishermanNotes)
	assert.Equal(t, "300", res.Record.Value().String())
}

func TestValidate_TrimsTextButEchoesOriginal(t *testing.T) {
	raw := validFields()
	raw.SpeciesName = "  Bangus \t"
	raw.Location = " Manila Bay "
	raw.WeightKg = " 3.75 "
	raw.FishermanNotes = "  early morning  "

	res := Validate(raw)

	require.True(t, res.Valid(), "errors: %v", res.Errors)
	assert.Equal(t, "Bangus", res.Record.SpeciesName)
	assert.Equal(t, "Manila Bay", res.Record.Location)
	assert.Equal(t, "early morning", res.Record.FishermanNotes)
	assert.Equal(t, "3.75", res.Record.WeightKg.String())
	assert.Equal(t, raw, res.Input, "input must be echoed verbatim")
}

func TestValidate_MissingRequiredFieldsReportsExactlyThoseKeys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawFields)
		want   []string
	}{
		{"species", func(f *RawFields) { f.SpeciesName = "" }, []string{FieldSpecies}},
		{"weight", func(f *RawFields) { f.WeightKg = "" }, []string{FieldWeight}},
		{"price", func(f *RawFields) { f.PricePerKg = "  " }, []string{FieldPrice}},
		{"date", func(f *RawFields) { f.CatchDate = "" }, []string{FieldDate}},
		{"method", func(f *RawFields) { f.CatchMethod = "" }, []string{FieldMethod}},
		{"location", func(f *RawFields) { f.Location = "\t" }, []string{FieldLocation}},
		{"all", func(f *RawFields) { *f = RawFields{} },
			[]string{FieldSpecies, FieldWeight, FieldPrice, FieldDate, FieldMethod, FieldLocation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validFields()
			tt.mutate(&raw)

			res := Validate(raw)

			assert.False(t, res.Valid())
			assert.Nil(t, res.Record)
			keys := make([]string, 0, len(res.Errors))
			for k := range res.Errors {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.want, keys)
		})
	}
}

func TestValidate_RequiredMessages(t *testing.T) {
	res := Validate(RawFields{})

	assert.Equal(t, "is required", res.Errors[FieldSpecies])
	assert.Equal(t, "is required", res.Errors[FieldWeight])
	assert.Equal(t, "is required", res.Errors[FieldPrice])
	assert.Equal(t, "is required", res.Errors[FieldDate])
	assert.Equal(t, "is required", res.Errors[FieldLocation])
	assert.Contains(t, res.Errors[FieldMethod], "must be one of")
}

func TestValidate_Weight(t *testing.T) {
	bad := []string{"0", "-1", "-0.5", "abc", "1kg", "0.000"}
	for _, v := range bad {
		t.Run("bad "+v, func(t *testing.T) {
			raw := validFields()
			raw.WeightKg = v
			res := Validate(raw)
			assert.Equal(t, "must be a valid positive number", res.Errors[FieldWeight])
			assert.Len(t, res.Errors, 1)
		})
	}

	good := []string{"0.01", "2.5", "1000", "12.125"}
	for _, v := range good {
		t.Run("good "+v, func(t *testing.T) {
			raw := validFields()
			raw.WeightKg = v
			res := Validate(raw)
			assert.NotContains(t, res.Errors, FieldWeight)
		})
	}
}

func TestValidate_Price(t *testing.T) {
	for _, v := range []string{"0", "0.00", "35.5", "120"} {
		raw := validFields()
		raw.PricePerKg = v
		res := Validate(raw)
		assert.True(t, res.Valid(), "price %q: %v", v, res.Errors)
	}

	for _, v := range []string{"-1", "cheap", "₱120"} {
		raw := validFields()
		raw.PricePerKg = v
		res := Validate(raw)
		assert.Equal(t, "must be a valid number", res.Errors[FieldPrice], "price %q", v)
	}
}

func TestValidate_Method(t *testing.T) {
	for _, m := range Methods {
		raw := validFields()
		raw.CatchMethod = string(m)
		res := Validate(raw)
		assert.True(t, res.Valid(), "method %q: %v", m, res.Errors)
		assert.Equal(t, m, res.Record.CatchMethod)
	}

	for _, m := range []string{"net", "Dynamite", "Net; DROP TABLE catches", "Cyanide"} {
		raw := validFields()
		raw.CatchMethod = m
		res := Validate(raw)
		assert.Contains(t, res.Errors, FieldMethod, "method %q", m)
	}
}

func TestValidate_NegativeWeightScenario(t *testing.T) {
	raw := validFields()
	raw.WeightKg = "-1"

	res := Validate(raw)

	assert.Nil(t, res.Record)
	assert.Equal(t, map[string]string{FieldWeight: "must be a valid positive number"}, res.Errors)
	assert.Equal(t, "-1", res.Input.WeightKg)
}

func TestValidate_MaxLength(t *testing.T) {
	raw := validFields()
	raw.SpeciesName = strings.Repeat("x", MaxTextLength+1)
	raw.Location = strings.Repeat("y", MaxTextLength)

	res := Validate(raw)

	assert.Contains(t, res.Errors, FieldSpecies)
	assert.NotContains(t, res.Errors, FieldLocation)
}

func TestValidate_NotesAreOptional(t *testing.T) {
	raw := validFields()
	raw.FishermanNotes = strings.Repeat("long note ", 500)

	res := Validate(raw)

	assert.True(t, res.Valid())
}

func TestFieldsFromForm(t *testing.T) {
	form := url.Values{
		"species_name":    {"Galunggong"},
		"weight_kg":       {"4"},
		"price_per_kg":    {"180.50"},
		"catch_date":      {"2024-02-01"},
		"catch_method":    {"Trawl"},
		"location":        {"Sulu Sea"},
		"fisherman_notes": {"rough water"},
	}

	f := FieldsFromForm(form)

	assert.Equal(t, "Galunggong", f.SpeciesName)
	assert.Equal(t, "180.50", f.PricePerKg)
	assert.Equal(t, "Trawl", f.CatchMethod)
	assert.Equal(t, "rough water", f.FishermanNotes)
}

func TestFieldsFromRecord_RoundTripsThroughValidate(t *testing.T) {
	res := Validate(validFields())
	require.True(t, res.Valid())

	again := Validate(FieldsFromRecord(*res.Record))

	require.True(t, again.Valid())
	assert.Equal(t, res.Record.SpeciesName, again.Record.SpeciesName)
	assert.True(t, res.Record.WeightKg.Equal(again.Record.WeightKg))
	assert.True(t, res.Record.PricePerKg.Equal(again.Record.PricePerKg))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Weight must be a valid positive number.", Describe(FieldWeight, "must be a valid positive number"))
	assert.Equal(t, "db failed.", Describe("db", "failed"))
}

func TestResult_FieldErrorsInFormOrder(t *testing.T) {
	res := Validate(RawFields{WeightKg: "abc", PricePerKg: "5"})

	errs := res.FieldErrors()
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Equal(t, []string{FieldSpecies, FieldWeight, FieldDate, FieldMethod, FieldLocation}, fields)
	assert.Equal(t, "must be a valid positive number", errs[1].Message)
	assert.Empty(t, Validate(validFields()).FieldErrors())
}

func TestValidate_TextTheColumnsWouldRefuse(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawFields)
		field  string
		msg    string
	}{
		{"species invalid utf8", func(f *RawFields) { f.SpeciesName = "Tilapia\xff" }, FieldSpecies, "must be valid UTF-8"},
		{"location null byte", func(f *RawFields) { f.Location = "Laguna\x00Bay" }, FieldLocation, "must not contain null bytes"},
		{"notes invalid utf8", func(f *RawFields) { f.FishermanNotes = "\xc3\x28" }, FieldNotes, "must be valid UTF-8"},
		{"notes too long", func(f *RawFields) { f.FishermanNotes = strings.Repeat("n", MaxNotesLength+1) }, FieldNotes, "exceeds maximum length of 16383 characters"},
		{"date too long", func(f *RawFields) { f.CatchDate = strings.Repeat("2024-01-10", 4) }, FieldDate, "exceeds maximum length of 32 characters"},
		{"date null byte", func(f *RawFields) { f.CatchDate = "2024-01-10\x00" }, FieldDate, "must not contain null bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validFields()
			tt.mutate(&raw)

			res := Validate(raw)

			assert.False(t, res.Valid())
			assert.Equal(t, map[string]string{tt.field: tt.msg}, res.Errors)
		})
	}
}

func TestValidate_AmountsTheColumnsCannotHoldExactly(t *testing.T) {
	for _, v := range []string{"1e3000000", "1e-3000000", "0.12345678901234567", "12345678901234567.25", "2.5e1"} {
		t.Run(v, func(t *testing.T) {
			raw := validFields()
			raw.WeightKg = v
			raw.PricePerKg = v

			res := Validate(raw)

			assert.Equal(t, map[string]string{
				FieldWeight: "must be a valid positive number",
				FieldPrice:  "must be a valid number",
			}, res.Errors)
		})
	}

	raw := validFields()
	raw.WeightKg = "99999999999999.999999"
	raw.PricePerKg = "0.000001"
	res := Validate(raw)
	require.True(t, res.Valid(), "%v", res.Errors)
	assert.Equal(t, "99999999999999.999999", res.Record.WeightKg.String())
	assert.Equal(t, "0.000001", res.Record.PricePerKg.String())
}

func TestDescribe_Notes(t *testing.T) {
	assert.Equal(t, "Notes must be valid UTF-8.", Describe(FieldNotes, "must be valid UTF-8"))
}
