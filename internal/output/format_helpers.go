package output

import (
	"strconv"

	dec "github.com/carescan/proforma/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return dec.FormatCurrency(amount) }

// FormatPercentage formats a fraction as a percentage with one decimal.
func FormatPercentage(fraction decimal.Decimal) string { return dec.FormatPercent(fraction) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func money(d decimal.Decimal) string { return d.StringFixed(2) }
