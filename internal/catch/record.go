package catch

import (
	"github.com/shopspring/decimal"
)

// Method is the gear used to land a catch.
type Method string

const (
	MethodNet   Method = "Net"
	MethodLine  Method = "Line"
	MethodTrap  Method = "Trap"
	MethodSpear Method = "Spear"
	MethodTrawl Method = "Trawl"
)

// Methods lists the allowed catch methods in display order.
var Methods = []Method{MethodNet, MethodLine, MethodTrap, MethodSpear, MethodTrawl}

// methodNames returns Methods as plain strings.
func methodNames() []string {
	names := make([]string, len(Methods))
	for i, m := range Methods {
		names[i] = string(m)
	}
	return names
}

// Record is one logged fishing event.
type Record struct {
	ID             int64           `json:"id"`
	SpeciesName    string          `json:"species_name"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	PricePerKg     decimal.Decimal `json:"price_per_kg"`
	CatchDate      string          `json:"catch_date"`
	CatchMethod    Method          `json:"catch_method"`
	Location       string          `json:"location"`
	FishermanNotes string          `json:"fisherman_notes"`
}

// Value returns weight times price per kilo.
func (r Record) Value() decimal.Decimal {
	return r.WeightKg.Mul(r.PricePerKg)
}

// Totals aggregates a set of records for the dashboard.
type Totals struct {
	Count    int             `json:"count"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Value    decimal.Decimal `json:"value"`
}

// Summarize sums weight and value over records.
func Summarize(records []Record) Totals {
	t := Totals{WeightKg: decimal.Zero, Value: decimal.Zero}
	for _, r := range records {
		t.Count++
		t.WeightKg = t.WeightKg.Add(r.WeightKg)
		t.Value = t.Value.Add(r.Value())
	}
	return t
}
