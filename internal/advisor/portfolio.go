package advisor

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Portfolio maps an asset label to the amount invested in rupees.
type Portfolio map[string]decimal.Decimal

// Assets returns the asset labels in a stable order.
func (p Portfolio) Assets() []string {
	keys := lo.Keys(p)
	sort.Strings(keys)
	return keys
}

// JSON renders the holdings as a plain JSON object with numeric amounts.
func (p Portfolio) JSON() string {
	if len(p) == 0 {
		return ""
	}
	plain := lo.MapValues(p, func(v decimal.Decimal, _ string) json.Number {
		return json.Number(v.String())
	})
	b, err := json.Marshal(plain)
	if err != nil {
		return ""
	}
	return string(b)
}

// formatAmount groups thousands and keeps up to three fraction digits.
func formatAmount(d decimal.Decimal) string {
	r := d.Round(3)
	whole := r.Truncate(0)
	out := humanize.Comma(whole.IntPart())
	if r.IsNegative() && whole.IsZero() {
		out = "-" + out
	}

	frac := r.Sub(whole).Abs()
	if !frac.IsZero() {
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}
