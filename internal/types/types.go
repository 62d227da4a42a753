// Package types holds the JSON wire shapes of the catch API.
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/isdalog/isdalog/internal/catch"
)

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Driver     string `json:"driver"`
	CatchCount int64  `json:"catch_count"`
}

// Catch is a stored record plus its computed value (weight x price).
type Catch struct {
	catch.Record
	Value decimal.Decimal `json:"value"`
}

// NewCatch wraps a record for the wire.
func NewCatch(r catch.Record) Catch {
	return Catch{Record: r, Value: r.Value()}
}

// SortInfo echoes the sort that was actually applied.
type SortInfo struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

// CatchList is returned by GET /api/v1/catches.
type CatchList struct {
	Catches []Catch      `json:"catches"`
	Totals  catch.Totals `json:"totals"`
	Sort    SortInfo     `json:"sort"`
	Search  string       `json:"search,omitempty"`
}

// NewCatchList builds a list response over records.
func NewCatchList(records []catch.Record, search string, sort SortInfo) CatchList {
	out := CatchList{
		Catches: make([]Catch, 0, len(records)),
		Totals:  catch.Summarize(records),
		Sort:    sort,
		Search:  search,
	}
	for _, r := range records {
		out.Catches = append(out.Catches, NewCatch(r))
	}
	return out
}

// MarshalJSON ensures a nil Catches slice marshals as [] not null.
func (l CatchList) MarshalJSON() ([]byte, error) {
	if l.Catches == nil {
		l.Catches = []Catch{}
	}
	type Alias CatchList
	return json.Marshal(Alias(l))
}
