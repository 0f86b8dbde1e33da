package decimal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Ratio returns num/den as a decimal, or zero when den is zero.
func Ratio(num, den int64) decimal.Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den))
}

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Monthly converts an annual amount to monthly
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Clamp bounds d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// ClampUnit bounds a rate to [0, 1].
func ClampUnit(d decimal.Decimal) decimal.Decimal {
	return Clamp(d, decimal.Zero, one)
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if b.LessThan(a) {
		return b
	}
	return a
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// ParseAmount parses a spreadsheet-style number such as "$1,250.50", "100_000" or "12.5%".
// Percent-suffixed values are returned as fractions.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	percent := strings.HasSuffix(clean, "%")
	clean = strings.TrimSuffix(clean, "%")
	clean = strings.NewReplacer("$", "", ",", "", "_", "", " ", "").Replace(clean)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if percent {
		d = d.Div(hundred)
	}
	return d, nil
}

// FormatCurrency renders d as dollars with thousands separators, e.g. -$1,234.56.
func FormatCurrency(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + "$" + b.String() + frac
}

// FormatPercent renders a fraction as a percentage with one decimal place.
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(1) + "%"
}
