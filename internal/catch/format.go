package catch

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount renders d rounded to two places with thousands separators,
// e.g. 1,234.50.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return s
	}
	out := humanize.BigComma(n) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
